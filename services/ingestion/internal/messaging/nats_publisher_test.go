package messaging

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobtagger/common/errors"
	"jobtagger/common/models"
)

type fakeConn struct {
	subjects []string
	payloads []string
	err      error
	closed   bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, string(data))
	return nil
}

func (f *fakeConn) Close() { f.closed = true }

func TestNATSPublisher_PublishRecord(t *testing.T) {
	c := &fakeConn{}
	p := newNATSPublisher(c, "jobs.raw", zap.NewNop())

	err := p.PublishRecord(context.Background(), models.Record{
		models.FieldJobID: "job_1000",
		models.FieldTitle: "R&D <Engineer>",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"jobs.raw"}, c.subjects)
	assert.JSONEq(t, `{"job_id":"job_1000","title":"R&D <Engineer>"}`, c.payloads[0])

	p.Close()
	assert.True(t, c.closed)
}

func TestNATSPublisher_PublishError(t *testing.T) {
	c := &fakeConn{err: fmt.Errorf("nats: connection closed")}
	p := newNATSPublisher(c, "jobs.raw", zap.NewNop())

	err := p.PublishRecord(context.Background(), models.Record{models.FieldJobID: "job_1"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeUnavailable))
}

func TestNATSPublisher_MarshalError(t *testing.T) {
	p := newNATSPublisher(&fakeConn{}, "jobs.raw", zap.NewNop())

	err := p.PublishRecord(context.Background(), models.Record{"bad": make(chan int)})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeInternal))
}
