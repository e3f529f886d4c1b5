package cli

import (
	"errors"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

const maxPageSize = 15

// SurveyPrompter renders prompts on a terminal.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter binds prompts to the given terminal streams.
func NewSurveyPrompter(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *SurveyPrompter {
	return &SurveyPrompter{opts: []survey.AskOpt{survey.WithStdio(in, out, errOut)}}
}

// Select implements Prompter.
func (p *SurveyPrompter) Select(message string, options []string) (int, error) {
	var idx int
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: pageSize(len(options)),
	}
	if err := survey.AskOne(prompt, &idx, p.opts...); err != nil {
		return 0, translatePromptError(err)
	}
	return idx, nil
}

// Input implements Prompter.
func (p *SurveyPrompter) Input(message string) (string, error) {
	var answer string
	if err := survey.AskOne(&survey.Input{Message: message}, &answer, p.opts...); err != nil {
		return "", translatePromptError(err)
	}
	return answer, nil
}

func pageSize(n int) int {
	if n <= 0 {
		return 1
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}

func translatePromptError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInterrupted
	}
	return err
}
