package cmd

import (
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/GoCodeAlone/femglue"
)

// SurveyIO represents the standard input/output streams for prompts
type SurveyIO struct {
	In  terminal.FileReader
	Out terminal.FileWriter
	Err terminal.FileWriter
}

// DefaultSurveyIO provides standard IO for interactive prompts
var DefaultSurveyIO = SurveyIO{
	In:  os.Stdin,
	Out: os.Stdout,
	Err: os.Stderr,
}

// SurveyStdio is the IO used by interactive commands; tests replace it.
var SurveyStdio = DefaultSurveyIO

// WithStdio returns survey.WithStdio option
func (s SurveyIO) WithStdio() survey.AskOpt {
	return survey.WithStdio(s.In, s.Out, s.Err)
}

// askPrecision prompts for the number of decimal places.
var askPrecision = func(current int) (int, error) {
	answer := strconv.Itoa(current)
	prompt := &survey.Input{
		Message: "How many decimal places should coordinates be rounded to?",
		Default: answer,
		Help:    "Quantities smaller than 10^-precision are treated as zero. Valid range is 1 to 15.",
	}
	err := survey.AskOne(prompt, &answer, SurveyStdio.WithStdio(), survey.WithValidator(validatePrecisionAnswer))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

func validatePrecisionAnswer(ans interface{}) error {
	s, _ := ans.(string)
	p, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	return (&femglue.Config{Precision: p}).Validate()
}
