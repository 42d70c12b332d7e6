package results

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/solver4all/sgcp-bp/errs"
)

// BKSCache is the on-disk best-known-solution cache: one line per
// instance basename, holding the stable sets of the best pool found
// for it so far.
type BKSCache struct {
	path    string
	records map[string][][]int
}

// LoadBKSCache reads path if it exists, or returns an empty cache
// that will create the file on first Save.
func LoadBKSCache(path string) (*BKSCache, error) {
	c := &BKSCache{path: path, records: make(map[string][][]int)}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, errs.Input("bks: open "+path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		name := fields[0]
		var sets [][]int
		for _, raw := range fields[1:] {
			if raw == "" {
				continue
			}
			sets = append(sets, parseIDList(raw))
		}
		c.records[name] = sets
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Input("bks: read "+path, err)
	}
	return c, nil
}

func parseIDList(raw string) []int {
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		if v, err := strconv.Atoi(p); err == nil {
			ids = append(ids, v)
		}
	}
	return ids
}

// Get returns the recorded stable sets for an instance, if any.
func (c *BKSCache) Get(instance string) ([][]int, bool) {
	sets, ok := c.records[instance]
	return sets, ok
}

// NumColours reports the size of the recorded solution, or -1 if
// none is on record.
func (c *BKSCache) NumColours(instance string) int {
	sets, ok := c.records[instance]
	if !ok {
		return -1
	}
	return len(sets)
}

// Put replaces the recorded solution for an instance and persists the
// whole cache: write to a temp file, move the previous file to
// *.bak, then rename the temp file into place.
func (c *BKSCache) Put(instance string, sets [][]int) error {
	c.records[instance] = sets
	return c.save()
}

func (c *BKSCache) save() error {
	tmp := c.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errs.Input("bks: create "+tmp, err)
	}

	w := bufio.NewWriter(f)
	for name, sets := range c.records {
		w.WriteString(name)
		for _, set := range sets {
			w.WriteByte(';')
			w.WriteString(formatIDList(set))
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("bks: flush %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("bks: close %s: %w", tmp, err)
	}

	if _, err := os.Stat(c.path); err == nil {
		if err := os.Rename(c.path, c.path+".bak"); err != nil {
			return fmt.Errorf("bks: backup %s: %w", c.path, err)
		}
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("bks: rename %s: %w", tmp, err)
	}
	return nil
}

func formatIDList(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
