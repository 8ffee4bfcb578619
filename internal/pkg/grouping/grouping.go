// Package grouping folds flat join rows into nested groups.
//
// A join such as industries ⋈ companies yields one row per (parent, child)
// pair. Grouper collapses those rows into one entity per parent key, keeping
// parent keys in the order they were first seen and each parent's children in
// the order they were appended. A child repeated under the same key is kept
// once, at its first position. The first row seen for a key supplies the
// parent attributes; later rows for that key only contribute children.
package grouping

// Entity is one grouped parent with its accumulated children.
type Entity[K comparable, A any, C comparable] struct {
	Key      K
	Attrs    A
	Children []C
}

type builder[K comparable, A any, C comparable] struct {
	entity Entity[K, A, C]
	seen   map[C]struct{}
}

// Grouper accumulates rows. The zero value is ready to use. It is not safe
// for concurrent use.
type Grouper[K comparable, A any, C comparable] struct {
	index  map[K]int
	groups []*builder[K, A, C]
}

// New returns an empty Grouper. It is equivalent to the zero value.
func New[K comparable, A any, C comparable]() *Grouper[K, A, C] {
	return &Grouper[K, A, C]{}
}

// Add folds one row into the grouping.
func (g *Grouper[K, A, C]) Add(key K, attrs A, child C) {
	if g.index == nil {
		g.index = make(map[K]int)
	}
	pos, ok := g.index[key]
	if !ok {
		pos = len(g.groups)
		g.index[key] = pos
		g.groups = append(g.groups, &builder[K, A, C]{
			entity: Entity[K, A, C]{Key: key, Attrs: attrs},
			seen:   make(map[C]struct{}),
		})
	}
	b := g.groups[pos]
	if _, dup := b.seen[child]; dup {
		return
	}
	b.seen[child] = struct{}{}
	b.entity.Children = append(b.entity.Children, child)
}

// Groups returns the entities in first-seen key order. The result never
// aliases the grouper's internal slices and is non-nil even when empty.
func (g *Grouper[K, A, C]) Groups() []Entity[K, A, C] {
	out := make([]Entity[K, A, C], 0, len(g.groups))
	for _, b := range g.groups {
		children := make([]C, len(b.entity.Children))
		copy(children, b.entity.Children)
		out = append(out, Entity[K, A, C]{Key: b.entity.Key, Attrs: b.entity.Attrs, Children: children})
	}
	return out
}

// Row is a join row of the form parent_key | parent_name | child_value.
type Row struct {
	Key   string
	Name  string
	Child string
}

// Group is the nested form of Rows sharing a key.
type Group struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Children []string `json:"children"`
}

// GroupRows groups rows by Key in first-seen order, taking Name from the
// first row of each key. The result is non-nil.
func GroupRows(rows []Row) []Group {
	g := New[string, string, string]()
	for _, r := range rows {
		g.Add(r.Key, r.Name, r.Child)
	}
	entities := g.Groups()
	out := make([]Group, 0, len(entities))
	for _, e := range entities {
		out = append(out, Group{Key: e.Key, Name: e.Attrs, Children: e.Children})
	}
	return out
}

// Flatten is the inverse of GroupRows: one Row per (group, child) pair, in
// group order then child order.
func Flatten(groups []Group) []Row {
	var out []Row
	for _, grp := range groups {
		for _, child := range grp.Children {
			out = append(out, Row{Key: grp.Key, Name: grp.Name, Child: child})
		}
	}
	return out
}
