package words

import (
	"bufio"
	"errors"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"
)

// DefaultWords is the built-in animal vocabulary.
var DefaultWords = strings.Fields(`ant baboon badger bat bear beaver camel cat clam cobra
cougar coyote crow deer dog donkey duck eagle ferret fox frog goat goose hawk lion
lizard llama mole monkey moose mouse mule newt otter owl panda parrot pigeon python
rabbit ram rat raven rhino salmon seal shark sheep skunk sloth snake spider stork
swan tiger toad trout turkey turtle weasel whale wolf wombat zebra`)

var ErrEmptyVocabulary = errors.New("words: vocabulary is empty")

// Vocabulary hands out uniformly random secret words from a fixed list.
type Vocabulary struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	words []string
}

// NewVocabulary normalizes list (lowercase, alphabetic, no duplicates).
// A zero seed picks a time based one.
func NewVocabulary(list []string, seed int64) (*Vocabulary, error) {
	words := normalize(list)
	if len(words) == 0 {
		return nil, ErrEmptyVocabulary
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Vocabulary{
		rnd:   rand.New(rand.NewSource(seed)),
		words: words,
	}, nil
}

// Load reads one word per line from path, or returns DefaultWords when path
// is empty.
func Load(path string) ([]string, error) {
	if path == "" {
		return DefaultWords, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readWords(f)
}

func readWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

func (v *Vocabulary) RandomWord() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.words[v.rnd.Intn(len(v.words))]
}

func (v *Vocabulary) Len() int {
	return len(v.words)
}

func (v *Vocabulary) Contains(word string) bool {
	for _, w := range v.words {
		if w == word {
			return true
		}
	}
	return false
}

func normalize(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, raw := range list {
		w := strings.TrimSpace(strings.ToLower(raw))
		if w == "" || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
