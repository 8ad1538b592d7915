package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/survival"
)

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Score three built-in example patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, validator, err := loadPipeline()
			if err != nil {
				return err
			}

			examples := []struct {
				label string
				input survival.PatientInput
			}{
				{
					label: "PATIENT 1: Higher Risk Profile",
					input: survival.PatientInput{
						Age: 68, Gender: "FEMALE",
						Protein1: -0.5, Protein2: 0.8, Protein3: 0.2, Protein4: -0.3,
						TumourStage: "III", Histology: "Infiltrating Ductal Carcinoma",
						ERStatus: "Negative", PRStatus: "Negative", HER2Status: "Positive",
						SurgeryType: "Mastectomy",
					},
				},
				{
					label: "PATIENT 2: Moderate Risk Profile",
					input: survival.PatientInput{
						Age: 52, Gender: "FEMALE",
						Protein1: 0.5, Protein2: 1.2, Protein3: -0.1, Protein4: 0.05,
						TumourStage: "II", Histology: "Infiltrating Ductal Carcinoma",
						ERStatus: "Positive", PRStatus: "Positive", HER2Status: "Negative",
						SurgeryType: "Lumpectomy",
					},
				},
				{
					label: "PATIENT 3: Lower Risk Profile",
					input: survival.PatientInput{
						Age: 42, Gender: "FEMALE",
						Protein1: 0.95, Protein2: 2.15, Protein3: 0.008, Protein4: -0.05,
						TumourStage: "I", Histology: "Infiltrating Lobular Carcinoma",
						ERStatus: "Positive", PRStatus: "Positive", HER2Status: "Negative",
						SurgeryType: "Other",
					},
				},
			}

			for _, example := range examples {
				fmt.Println(example.label)

				record, err := validator.Validate(example.input)
				if err != nil {
					return err
				}
				result, err := pipeline.Predict(record)
				if err != nil {
					return err
				}
				printResult(result)
				fmt.Println()
			}
			return nil
		},
	}
}
