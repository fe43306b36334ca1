// Package catalog contiene la taxonomía de categorías: configuración inmutable,
// cargada una vez al arrancar e inyectada donde se valida.
package catalog

// Taxonomy conjunto fijo de categorías válidas y sus subcategorías.
// Un valor Taxonomy no se modifica después de construido; los getters devuelven copias.
type Taxonomy struct {
	categories    []string
	index         map[string]struct{}
	subcategories map[string]map[string]struct{}
	subOrder      map[string][]string
}

// NewTaxonomy construye la taxonomía. Las subcategorías de categorías desconocidas se ignoran.
func NewTaxonomy(categories []string, subcategories map[string][]string) *Taxonomy {
	t := &Taxonomy{
		categories:    make([]string, 0, len(categories)),
		index:         make(map[string]struct{}, len(categories)),
		subcategories: make(map[string]map[string]struct{}),
		subOrder:      make(map[string][]string),
	}
	for _, c := range categories {
		if _, dup := t.index[c]; dup || c == "" {
			continue
		}
		t.index[c] = struct{}{}
		t.categories = append(t.categories, c)
	}
	for c, subs := range subcategories {
		if _, ok := t.index[c]; !ok || len(subs) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(subs))
		order := make([]string, 0, len(subs))
		for _, s := range subs {
			if _, dup := set[s]; dup {
				continue
			}
			set[s] = struct{}{}
			order = append(order, s)
		}
		t.subcategories[c] = set
		t.subOrder[c] = order
	}
	return t
}

// Default taxonomía estándar del comercio francés usada por el servicio.
func Default() *Taxonomy {
	return NewTaxonomy(
		[]string{
			"ALIMENTAIRE",
			"BOISSONS",
			"HYGIENE_BEAUTE",
			"TEXTILE",
			"ELECTRONIQUE",
			"MAISON_JARDIN",
			"SPORT_LOISIRS",
			"ARTISANAT",
			"AUTRE",
		},
		map[string][]string{
			"ALIMENTAIRE":    {"BOUCHERIE", "BOULANGERIE", "EPICERIE", "FRUITS_LEGUMES", "PRODUITS_FRAIS"},
			"BOISSONS":       {"ALCOOLISEES", "NON_ALCOOLISEES", "CHAUDES"},
			"HYGIENE_BEAUTE": {"HYGIENE", "COSMETIQUES", "PARFUMS"},
			"TEXTILE":        {"VETEMENTS", "CHAUSSURES", "ACCESSOIRES"},
			"ARTISANAT":      {"FAIT_MAIN", "MATERIAUX", "OUTILS"},
		},
	)
}

// HasCategory informa si la categoría pertenece a la taxonomía.
func (t *Taxonomy) HasCategory(category string) bool {
	_, ok := t.index[category]
	return ok
}

// AllowsSubcategory informa si sub es aceptable para category.
// Sin conjunto registrado para la categoría, cualquier valor (incluido vacío) es válido.
// Con conjunto, el vacío sigue siendo válido porque la subcategoría es opcional.
func (t *Taxonomy) AllowsSubcategory(category, sub string) bool {
	set, ok := t.subcategories[category]
	if !ok || sub == "" {
		return true
	}
	_, ok = set[sub]
	return ok
}

// Categories devuelve las categorías en el orden de declaración.
func (t *Taxonomy) Categories() []string {
	out := make([]string, len(t.categories))
	copy(out, t.categories)
	return out
}

// Subcategories devuelve una copia del mapa categoría → subcategorías.
func (t *Taxonomy) Subcategories() map[string][]string {
	out := make(map[string][]string, len(t.subOrder))
	for c, subs := range t.subOrder {
		cp := make([]string, len(subs))
		copy(cp, subs)
		out[c] = cp
	}
	return out
}
