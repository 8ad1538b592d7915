package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/survival"
)

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Enter patient data interactively and predict",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, validator, err := loadPipeline()
			if err != nil {
				return err
			}

			fmt.Println("Enter patient information (press Enter for defaults shown in brackets):")
			fmt.Println()

			prompter := &prompter{reader: bufio.NewReader(os.Stdin)}

			input := survival.PatientInput{
				// Default for breast cancer
				Gender: "FEMALE",
			}
			input.Age = prompter.promptInt("Age", 50)
			input.Protein1 = prompter.promptFloat("Protein1 level", 0.5)
			input.Protein2 = prompter.promptFloat("Protein2 level", 1.0)
			input.Protein3 = prompter.promptFloat("Protein3 level", 0.0)
			input.Protein4 = prompter.promptFloat("Protein4 level", 0.0)
			input.TumourStage = prompter.promptChoice("Tumour Stage (I/II/III)", []string{"I", "II", "III"}, "II")
			input.Histology = prompter.promptMenu("histology", []string{
				"Infiltrating Ductal Carcinoma",
				"Infiltrating Lobular Carcinoma",
				"Mucinous Carcinoma",
			}, 1)
			input.ERStatus = prompter.promptChoice("ER status (Positive/Negative)", []string{"Positive", "Negative"}, "Positive")
			input.PRStatus = prompter.promptChoice("PR status (Positive/Negative)", []string{"Positive", "Negative"}, "Positive")
			input.HER2Status = prompter.promptChoice("HER2 status (Positive/Negative)", []string{"Positive", "Negative"}, "Negative")
			input.SurgeryType = prompter.promptMenu("surgery type", []string{
				"Lumpectomy",
				"Mastectomy",
				"Modified Radical Mastectomy",
				"Other",
			}, 1)

			record, err := validator.Validate(input)
			if err != nil {
				return err
			}
			result, err := pipeline.Predict(record)
			if err != nil {
				return err
			}

			fmt.Println()
			printResult(result)
			return nil
		},
	}
}

type prompter struct {
	reader *bufio.Reader
}

func (p *prompter) promptLine(label string, fallback string) string {
	fmt.Printf("%s [%s]: ", label, fallback)
	line, err := p.reader.ReadString('\n')
	if err != nil {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func (p *prompter) promptInt(label string, fallback int) int {
	line := p.promptLine(label, strconv.Itoa(fallback))
	if value, err := strconv.Atoi(line); err == nil {
		return value
	}
	return fallback
}

func (p *prompter) promptFloat(label string, fallback float64) float64 {
	line := p.promptLine(label, strconv.FormatFloat(fallback, 'g', -1, 64))
	if value, err := strconv.ParseFloat(line, 64); err == nil {
		return value
	}
	return fallback
}

func (p *prompter) promptChoice(label string, allowed []string, fallback string) string {
	line := p.promptLine(label, fallback)
	for _, a := range allowed {
		if strings.EqualFold(line, a) {
			return a
		}
	}
	return fallback
}

// promptMenu shows a numbered option list and returns the selected entry.
func (p *prompter) promptMenu(label string, options []string, fallback int) string {
	fmt.Printf("\n%s options:\n", strings.ToUpper(label[:1])+label[1:])
	for i, option := range options {
		fmt.Printf("  %d. %s\n", i+1, option)
	}
	line := p.promptLine(fmt.Sprintf("Select %s (1-%d)", label, len(options)), strconv.Itoa(fallback))
	if choice, err := strconv.Atoi(line); err == nil && choice >= 1 && choice <= len(options) {
		return options[choice-1]
	}
	return options[fallback-1]
}
