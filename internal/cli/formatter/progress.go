package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderCompletion renders how many of total nodes are done as a bar like
// [████░░░░] 12/32. The bar is green above two thirds, yellow above one
// third and red below.
func RenderCompletion(done, total, width int) string {
	if width < 2 {
		width = 2
	}
	if total <= 0 {
		return fmt.Sprintf("[%s] 0/0", Dim(strings.Repeat(emptyBlock, width)))
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}

	pct := float64(done) / float64(total)
	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), done, total)
}
