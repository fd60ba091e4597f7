package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/pipeline"
)

// Command is a menu choice.
type Command int

const (
	CmdTree Command = iota + 1
	CmdMatrix
	CmdImportance
	CmdPredict
	CmdExit
)

var commandTitles = map[Command]string{
	CmdTree:       "View the decision tree",
	CmdMatrix:     "Show the confusion matrix",
	CmdImportance: "Show feature importance",
	CmdPredict:    "Enter new data for a prediction",
	CmdExit:       "Exit",
}

func (c Command) String() string {
	if t, ok := commandTitles[c]; ok {
		return t
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ErrInvalidOption is returned by ParseCommand for anything but 1-5.
var ErrInvalidOption = errors.New("invalid option")

// ParseCommand maps the typed option to a Command.
func ParseCommand(s string) (Command, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return CmdTree, nil
	case "2":
		return CmdMatrix, nil
	case "3":
		return CmdImportance, nil
	case "4":
		return CmdPredict, nil
	case "5":
		return CmdExit, nil
	}
	return 0, ErrInvalidOption
}

// Menu is the numbered text menu. It reads lines from In until the user
// exits or In is exhausted.
type Menu struct {
	Actions Actions
	In      io.Reader
	Out     io.Writer
}

// Run loops over the menu. It returns nil on exit or end of input, and
// the first error an action returns other than an input_validation error.
func (m *Menu) Run() error {
	sc := bufio.NewScanner(m.In)
	for {
		m.printMenu()
		line, ok := m.readLine(sc, "Choose an option (1-5): ")
		if !ok {
			return sc.Err()
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintln(m.Out, "Invalid option. Please choose an option between 1 and 5.")
			continue
		}

		switch cmd {
		case CmdTree:
			err = m.Actions.Tree(m.Out)
		case CmdMatrix:
			err = m.Actions.Matrix(m.Out)
		case CmdImportance:
			err = m.Actions.Importance(m.Out)
		case CmdPredict:
			var done bool
			done, err = m.predict(sc)
			if done {
				return sc.Err()
			}
		case CmdExit:
			fmt.Fprintln(m.Out, "Exiting.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.Out, "\nMenu:")
	for c := CmdTree; c <= CmdExit; c++ {
		fmt.Fprintf(m.Out, "%d. %s\n", int(c), c)
	}
}

func (m *Menu) readLine(sc *bufio.Scanner, prompt string) (string, bool) {
	fmt.Fprint(m.Out, prompt)
	if !sc.Scan() {
		fmt.Fprintln(m.Out)
		return "", false
	}
	return sc.Text(), true
}

// predict prompts for every feature and prints the outcome. done is true
// when input ran out mid-form.
func (m *Menu) predict(sc *bufio.Scanner) (done bool, err error) {
	schema := m.Actions.Schema()
	fields := make(map[string]string, schema.Width())
	for _, name := range schema.FeatureNames {
		line, ok := m.readLine(sc, "Enter "+fieldLabel(name)+": ")
		if !ok {
			return true, nil
		}
		fields[name] = line
	}

	sample, err := pipeline.ParseSample(schema, fields)
	if err != nil {
		if errors.Is(err, pipeline.ErrInputValidation) {
			fmt.Fprintln(m.Out, InvalidInput)
			return false, nil
		}
		return false, err
	}
	label, err := m.Actions.Predict(sample)
	if err != nil {
		if errors.Is(err, pipeline.ErrInputValidation) {
			fmt.Fprintln(m.Out, InvalidInput)
			return false, nil
		}
		return false, err
	}
	fmt.Fprintf(m.Out, "\nPrediction: %s\n", Outcome(label))
	return false, nil
}
