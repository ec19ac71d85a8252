package orchestrator

import "github.com/songofhawk/Giga-Peach/internal/domain"

// ToggleRatio flips membership of one ratio in the selection. Removing the
// last selected ratio is rejected so a batch always has a valid shape.
func ToggleRatio(selected []domain.AspectRatio, ratio domain.AspectRatio) ([]domain.AspectRatio, error) {
	for i, existing := range selected {
		if existing == ratio {
			if len(selected) == 1 {
				return nil, domain.ErrEmptySelection
			}
			out := append([]domain.AspectRatio(nil), selected[:i]...)
			return append(out, selected[i+1:]...), nil
		}
	}
	return append(append([]domain.AspectRatio(nil), selected...), ratio), nil
}
