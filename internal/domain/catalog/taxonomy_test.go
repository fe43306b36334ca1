package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-api/internal/domain/catalog"
)

func TestDefault_CategoriasYSubcategorias(t *testing.T) {
	tx := catalog.Default()

	assert.Len(t, tx.Categories(), 9)
	assert.True(t, tx.HasCategory("BOISSONS"))
	assert.False(t, tx.HasCategory("boissons"), "la comparación es exacta")
	assert.ElementsMatch(t,
		[]string{"ALIMENTAIRE", "ARTISANAT", "BOISSONS", "HYGIENE_BEAUTE", "TEXTILE"},
		keys(tx.Subcategories()), "solo estas categorías restringen subcategoría")
}

func TestAllowsSubcategory(t *testing.T) {
	tx := catalog.Default()

	assert.True(t, tx.AllowsSubcategory("BOISSONS", "CHAUDES"))
	assert.False(t, tx.AllowsSubcategory("BOISSONS", "BOUCHERIE"))
	assert.True(t, tx.AllowsSubcategory("BOISSONS", ""), "subcategoría opcional")
	assert.True(t, tx.AllowsSubcategory("ELECTRONIQUE", "CUALQUIERA"), "categoría sin conjunto acepta todo")
}

func TestTaxonomy_CopiasInmutables(t *testing.T) {
	tx := catalog.Default()

	cats := tx.Categories()
	cats[0] = "MUTADA"
	subs := tx.Subcategories()
	subs["BOISSONS"][0] = "MUTADA"

	assert.Equal(t, "ALIMENTAIRE", tx.Categories()[0])
	assert.Equal(t, "ALCOOLISEES", tx.Subcategories()["BOISSONS"][0])
}

func TestNewTaxonomy_IgnoraSubcategoriasHuerfanas(t *testing.T) {
	tx := catalog.NewTaxonomy([]string{"A", "A", ""}, map[string][]string{"B": {"X"}, "A": {"Y", "Y"}})

	assert.Equal(t, []string{"A"}, tx.Categories())
	assert.Equal(t, map[string][]string{"A": {"Y"}}, tx.Subcategories())
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
