package nuspell

import "sort"

// FlagSet is a sorted, duplicate-free collection of Flag values. Containment
// is O(log n); iteration order is ascending flag value.
type FlagSet struct {
	flags []Flag
}

// NewFlagSet builds a FlagSet from arbitrary (possibly unsorted, possibly
// duplicated) input flags.
func NewFlagSet(flags ...Flag) FlagSet {
	fs := FlagSet{flags: append([]Flag(nil), flags...)}
	fs.normalize()
	return fs
}

func (fs *FlagSet) normalize() {
	sort.Slice(fs.flags, func(i, j int) bool { return fs.flags[i] < fs.flags[j] })
	out := fs.flags[:0]
	var last Flag
	haveLast := false
	for _, f := range fs.flags {
		if haveLast && f == last {
			continue
		}
		out = append(out, f)
		last = f
		haveLast = true
	}
	fs.flags = out
}

// Len reports the number of distinct flags in the set.
func (fs FlagSet) Len() int { return len(fs.flags) }

// Empty reports whether the set has no flags.
func (fs FlagSet) Empty() bool { return len(fs.flags) == 0 }

// Contains reports whether f is a member of fs, in O(log n).
func (fs FlagSet) Contains(f Flag) bool {
	i := sort.Search(len(fs.flags), func(i int) bool { return fs.flags[i] >= f })
	return i < len(fs.flags) && fs.flags[i] == f
}

// Intersects reports whether fs and other share at least one flag.
func (fs FlagSet) Intersects(other FlagSet) bool {
	i, j := 0, 0
	for i < len(fs.flags) && j < len(other.flags) {
		switch {
		case fs.flags[i] == other.flags[j]:
			return true
		case fs.flags[i] < other.flags[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// Insert returns a new FlagSet with f added, preserving sorted/dedup order.
func (fs FlagSet) Insert(f Flag) FlagSet {
	i := sort.Search(len(fs.flags), func(i int) bool { return fs.flags[i] >= f })
	if i < len(fs.flags) && fs.flags[i] == f {
		return fs
	}
	out := make([]Flag, 0, len(fs.flags)+1)
	out = append(out, fs.flags[:i]...)
	out = append(out, f)
	out = append(out, fs.flags[i:]...)
	return FlagSet{flags: out}
}

// Erase returns a new FlagSet with f removed, if present.
func (fs FlagSet) Erase(f Flag) FlagSet {
	i := sort.Search(len(fs.flags), func(i int) bool { return fs.flags[i] >= f })
	if i >= len(fs.flags) || fs.flags[i] != f {
		return fs
	}
	out := make([]Flag, 0, len(fs.flags)-1)
	out = append(out, fs.flags[:i]...)
	out = append(out, fs.flags[i+1:]...)
	return FlagSet{flags: out}
}

// UnionWith returns the union of fs and other as a new FlagSet.
func (fs FlagSet) UnionWith(other FlagSet) FlagSet {
	if other.Empty() {
		return fs
	}
	out := make([]Flag, 0, len(fs.flags)+len(other.flags))
	i, j := 0, 0
	for i < len(fs.flags) && j < len(other.flags) {
		switch {
		case fs.flags[i] < other.flags[j]:
			out = append(out, fs.flags[i])
			i++
		case fs.flags[i] > other.flags[j]:
			out = append(out, other.flags[j])
			j++
		default:
			out = append(out, fs.flags[i])
			i++
			j++
		}
	}
	out = append(out, fs.flags[i:]...)
	out = append(out, other.flags[j:]...)
	return FlagSet{flags: out}
}

// Equal reports whether fs and other contain exactly the same flags.
func (fs FlagSet) Equal(other FlagSet) bool {
	if len(fs.flags) != len(other.flags) {
		return false
	}
	for i, f := range fs.flags {
		if other.flags[i] != f {
			return false
		}
	}
	return true
}

// Slice returns the flags in ascending order. The caller must not mutate it.
func (fs FlagSet) Slice() []Flag { return fs.flags }
