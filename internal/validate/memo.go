package validate

// minMemoWords is the shortest sentence tracked for duplication; shorter
// sentences ("Bring water.") repeat naturally.
const minMemoWords = 5

// SentenceMemo remembers sentences already generated per section type so
// duplicates across beaches can be flagged. It is owned by the caller and is
// not safe for concurrent use.
type SentenceMemo struct {
	seen map[string]map[string]struct{}
}

// NewSentenceMemo creates an empty memo.
func NewSentenceMemo() *SentenceMemo {
	return &SentenceMemo{seen: make(map[string]map[string]struct{})}
}

// Contains reports whether sentence was recorded for sectionType.
func (m *SentenceMemo) Contains(sectionType, sentence string) bool {
	_, ok := m.seen[sectionType][normalizeSentence(sentence)]
	return ok
}

// Add records sentence under sectionType.
func (m *SentenceMemo) Add(sectionType, sentence string) {
	set, ok := m.seen[sectionType]
	if !ok {
		set = make(map[string]struct{})
		m.seen[sectionType] = set
	}
	set[normalizeSentence(sentence)] = struct{}{}
}

// Len returns the number of sentences recorded across all section types.
func (m *SentenceMemo) Len() int {
	n := 0
	for _, set := range m.seen {
		n += len(set)
	}
	return n
}

// Reset forgets everything.
func (m *SentenceMemo) Reset() {
	m.seen = make(map[string]map[string]struct{})
}
