package prompt

import (
	"github.com/manifoldco/promptui"
)

// Password prompts for a masked input.
func Password(prompt string) (string, error) {
	p := promptui.Prompt{
		Label: label(prompt),
		Mask:  '*',
	}
	result, err := p.Run()
	return result, wrapError(err)
}
