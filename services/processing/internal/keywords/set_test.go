package keywords

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Match(t *testing.T) {
	set := Compile([][]string{
		{"backend", "sql", "nosql"},
		{"frontend", "react"},
		{"react native", "ios"},
		{"git", "github"},
	})

	tests := []struct {
		name     string
		text     string
		expected []bool
	}{
		{"overlapping suffix", "NoSQL store", []bool{true, false, false, false}},
		{"prefix of longer keyword", "react native apps", []bool{false, true, true, false}},
		{"keyword inside a word", "digital", []bool{false, false, false, true}},
		{"nested keywords", "github actions", []bool{false, false, false, true}},
		{"nothing", "cooking", []bool{false, false, false, false}},
		{"empty", "", []bool{false, false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, set.Match(tt.text))
		})
	}
}

func TestSet_SharedKeyword(t *testing.T) {
	set := Compile([][]string{{"react"}, {"React", "vue"}})

	assert.Equal(t, []bool{true, true}, set.Match("react"))
	assert.Equal(t, 0, set.First("we use react"))
	assert.Equal(t, 1, set.First("vue only"))
	assert.Equal(t, -1, set.First("angular"))
}

func TestSet_EmptyGroups(t *testing.T) {
	set := Compile([][]string{{}, {" ", ""}})

	assert.Equal(t, []bool{false, false}, set.Match("anything"))
	assert.Equal(t, -1, set.First("anything"))
}

func TestSet_ConcurrentMatch(t *testing.T) {
	set := Compile([][]string{{"python"}, {"java"}})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, []bool{true, true}, set.Match("java and python"))
			}
		}()
	}
	wg.Wait()
}

func TestSet_SignificantSpaces(t *testing.T) {
	set := Compile([][]string{{"bs "}})

	assert.Equal(t, []bool{true}, set.Match("BS in computer science"))
	assert.Equal(t, []bool{false}, set.Match("jobs"))
}
