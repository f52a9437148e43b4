package catalog

import "strings"

// Exact category names mapped to their storefront icon.
var categoryIcons = map[string]string{
	"Smartphones":  "📱",
	"Computadores": "💻",
	"Eletrônicos":  "🔌",
	"Tablets":      "📟",
	"Games":        "🎮",
	"Roupas":       "👕",
	"Calçados":     "👟",
	"Acessórios":   "👓",
	"Casa":         "🏠",
	"Decoração":    "🖼️",
	"Móveis":       "🛋️",
	"Esportes":     "⚽",
	"Fitness":      "💪",
	"Beleza":       "💄",
	"Cosméticos":   "🧴",
	"Livros":       "📚",
	"Educação":     "🎓",
}

const defaultCategoryIcon = "📦"

// CategoryIcon picks a display icon for a category name. Keyword matches
// win over the exact-name table so localized variants still resolve.
func CategoryIcon(categoryName string) string {
	name := strings.ToLower(categoryName)

	switch {
	case strings.Contains(name, "phone") || strings.Contains(name, "celular"):
		return "📱"
	case strings.Contains(name, "computador") || strings.Contains(name, "laptop"):
		return "💻"
	case strings.Contains(name, "tablet"):
		return "📟"
	case strings.Contains(name, "game") || strings.Contains(name, "console"):
		return "🎮"
	case strings.Contains(name, "roupa") || strings.Contains(name, "vestuário"):
		return "👕"
	case strings.Contains(name, "calçado") || strings.Contains(name, "sapato"):
		return "👟"
	case strings.Contains(name, "casa") || strings.Contains(name, "lar"):
		return "🏠"
	case strings.Contains(name, "decor") || strings.Contains(name, "decoração"):
		return "🖼️"
	case strings.Contains(name, "móvel") || strings.Contains(name, "moveis"):
		return "🛋️"
	case strings.Contains(name, "esporte"):
		return "⚽"
	case strings.Contains(name, "fitness") || strings.Contains(name, "academia"):
		return "💪"
	case strings.Contains(name, "beleza") || strings.Contains(name, "cosmético"):
		return "💄"
	case strings.Contains(name, "livro") || strings.Contains(name, "leitura"):
		return "📚"
	case strings.Contains(name, "eletro") || strings.Contains(name, "eletrônico"):
		return "🔌"
	}

	if icon, ok := categoryIcons[categoryName]; ok {
		return icon
	}
	return defaultCategoryIcon
}
