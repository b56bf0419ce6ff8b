package tagcache

// tagIndex is the reverse index tag -> set of keys. Like store it is not
// internally locked: every mutation happens inside the Cache's critical
// section, paired with the store mutation for the same key, which is what
// keeps the two structures in agreement.
type tagIndex struct {
	byTag map[string]map[string]struct{}
}

func newTagIndex() *tagIndex {
	return &tagIndex{byTag: make(map[string]map[string]struct{})}
}

// add records key under tag. Idempotent.
func (ix *tagIndex) add(tag, key string) {
	set, ok := ix.byTag[tag]
	if !ok {
		set = make(map[string]struct{})
		ix.byTag[tag] = set
	}
	set[key] = struct{}{}
}

// remove drops key from tag, deleting the tag bucket when it empties.
// Idempotent.
func (ix *tagIndex) remove(tag, key string) {
	set, ok := ix.byTag[tag]
	if !ok {
		return
	}
	delete(set, key)
	if len(set) == 0 {
		delete(ix.byTag, tag)
	}
}

// removeAll detaches key from every tag in tags.
func (ix *tagIndex) removeAll(tags []string, key string) {
	for _, t := range tags {
		ix.remove(t, key)
	}
}

// keysForTag returns a copy of the tag's key set; empty slice for an unknown
// tag.
func (ix *tagIndex) keysForTag(tag string) []string {
	set := ix.byTag[tag]
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return keys
}

// removeTag drops the whole bucket after the caller has removed the
// underlying entries.
func (ix *tagIndex) removeTag(tag string) {
	delete(ix.byTag, tag)
}

func (ix *tagIndex) reset() {
	ix.byTag = make(map[string]map[string]struct{})
}

// tagCount reports the number of distinct live tags.
func (ix *tagIndex) tagCount() int { return len(ix.byTag) }
