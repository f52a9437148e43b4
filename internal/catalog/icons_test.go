package catalog

import "testing"

func TestCategoryIcon(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Smartphones", "📱"},
		{"Celulares e Acessórios", "📱"},
		{"Computadores", "💻"},
		{"Notebooks e Laptops", "💻"},
		{"Games", "🎮"},
		{"Roupas Femininas", "👕"},
		{"Esportes", "⚽"},
		{"Livros", "📚"},
		{"Eletrodomésticos", "🔌"},
		{"Ferramentas", "📦"},
		{"", "📦"},
	}
	for _, tc := range cases {
		if got := CategoryIcon(tc.name); got != tc.want {
			t.Errorf("CategoryIcon(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
