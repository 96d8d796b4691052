package transfer

import (
	"path"
	"strings"

	"github.com/promakler/sitekit/pkg/utils/set"
)

// isRel checks if a slash path climbs out of its root
func isRel(p string) bool {
	for {
		if p == ".." {
			return true
		}
		dir, base := path.Split(p)
		if base == ".." {
			return true
		}
		if dir == "" || dir == "/" {
			return false
		}
		p = strings.TrimSuffix(dir, "/")
	}
}

// targetDirs collects every parent directory of the copies' targets
func targetDirs(m map[string]Copy) *set.Set[string] {
	out := set.New[string]()
	for target := range m {
		target = path.Clean(target)
		if path.IsAbs(target) || isRel(target) {
			continue
		}

		dir := path.Dir(target)
		for dir != "." && dir != "/" {
			out.Add(dir)
			dir = path.Dir(dir)
		}
	}

	out.Add(".")

	return out
}

// makeCopies indexes copies by target and collects targets claimed more than once.
func makeCopies(cs []Copy) (copies map[string]Copy, conflicts map[string][]Copy) {
	copies = make(map[string]Copy)
	conflicts = make(map[string][]Copy)

	for _, c := range cs {
		key := path.Clean(c.Target)
		conflicts[key] = append(conflicts[key], c)
		copies[key] = c
	}
	for d, claims := range conflicts {
		if len(claims) <= 1 {
			delete(conflicts, d)
		}
	}

	return copies, conflicts
}
