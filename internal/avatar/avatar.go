package avatar

import (
	"fmt"
	"math/rand"
	"strings"
)

var backgroundColors = []string{
	"#2596BE",
	"#00FF62",
	"#FF6300",
	"#FF0000",
	"#8040F7",
	"#FB00FF",
	"#FF00A1",
}

// Initials возвращает до двух первых букв слов отображаемого имени.
func Initials(displayName string) string {
	var initials strings.Builder
	for _, name := range strings.Fields(displayName) {
		initials.WriteString(string([]rune(name)[0]))
	}

	runes := []rune(initials.String())
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}

// GenerateSVG рисует аватар-заглушку с инициалами на случайном фоне.
func GenerateSVG(initials string) string {
	color := backgroundColors[rand.Intn(len(backgroundColors))]

	svg := fmt.Sprintf(`<svg width="100" height="100" style="background-color: %s;">
  <text x="50%%" y="50%%" dominant-baseline="middle" text-anchor="middle" font-weight="bold" font-size="24" fill="white">%s</text>
</svg>`, color, initials)

	return svg
}
