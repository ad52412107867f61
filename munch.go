package xmunch

// Stats summarizes a Munch run.
type Stats struct {
	// Words is the number of real words after the run.
	Words int `json:"words"`
	// Consumed is the number of real words explained by a stem.
	Consumed int `json:"consumed"`
	// Stems counts confirmed stems in both namespaces.
	Stems int `json:"stems"`
	// VirtualStems counts confirmed stems that are not real words.
	VirtualStems int          `json:"virtual_stems"`
	Groups       []GroupStats `json:"groups"`
}

// Munch runs every group of the grammar over the registry, in declaration
// order. A word consumed by one group is no longer matched by the groups
// that follow it.
func (d *Dictionary) Munch() Stats {
	var st Stats
	for _, g := range d.groups() {
		st.Groups = append(st.Groups, g.match(d.words, d.Logger))
	}
	for _, w := range d.words.Words() {
		if w.virtual {
			if w.IsStem() {
				st.Stems++
				st.VirtualStems++
			}
			continue
		}
		st.Words++
		if w.consumed {
			st.Consumed++
		}
		if w.IsStem() {
			st.Stems++
		}
	}
	return st
}
