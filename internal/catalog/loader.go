package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Catalog is the fixed, immutable list of selectable items.
type Catalog struct {
	items []Item
	index map[Item]struct{}
}

// New builds a catalog from ids, dropping blanks and duplicates (first wins).
func New(ids []Item) (*Catalog, error) {
	c := &Catalog{index: make(map[Item]struct{}, len(ids))}
	for _, id := range ids {
		id = Item(strings.TrimSpace(string(id)))
		if id == "" {
			continue
		}
		if _, dup := c.index[id]; dup {
			continue
		}
		c.index[id] = struct{}{}
		c.items = append(c.items, id)
	}
	if len(c.items) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	return c, nil
}

// Items returns a copy of the catalog in load order.
func (c *Catalog) Items() []Item {
	return slices.Clone(c.items)
}

// Has reports whether id is part of the catalog.
func (c *Catalog) Has(id Item) bool {
	_, ok := c.index[id]
	return ok
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Load reads the catalog. When listFile is set the identifiers come from its
// first CSV column; otherwise dir is scanned for image files.
func Load(dir, listFile string) (*Catalog, error) {
	var (
		ids []Item
		err error
	)
	if listFile != "" {
		ids, err = loadList(listFile)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", listFile, err)
		}
	} else {
		ids, err = scanDir(dir)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
	}
	return New(ids)
}

func scanDir(dir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		out = append(out, Item(e.Name()))
	}
	// ReadDir already sorts by name
	return out, nil
}

// loadList reads identifiers from the first column of a CSV file. A header
// row whose first cell is "filename" is skipped, as are blank rows and rows
// starting with '#'.
func loadList(path string) ([]Item, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	r.Comment = '#'
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var out []Item
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if i == 0 && strings.EqualFold(cell, "filename") {
			continue
		}
		if cell == "" {
			continue
		}
		out = append(out, Item(cell))
	}
	return out, nil
}
