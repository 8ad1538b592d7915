package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/artifact"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/common/logger"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/survival"
)

var (
	artifactDir    string
	riskPolicyPath string
)

func main() {
	logger.Init()

	root := &cobra.Command{
		Use:   "survival-cli",
		Short: "Breast cancer survival prediction from trained model artifacts",
		Long: "Predicts breast cancer patient survival times using a trained regression\n" +
			"model, and stratifies each prediction into a clinical risk tier.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&artifactDir, "artifacts", "linear-regression", "directory holding the trained model artifacts")
	root.PersistentFlags().StringVar(&riskPolicyPath, "risk-policy", "", "optional YAML file overriding the risk tier table")

	root.AddCommand(newExamplesCmd(), newInteractiveCmd(), newBatchCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadPipeline builds the prediction pipeline shared by every subcommand.
func loadPipeline() (*survival.Pipeline, *survival.Validator, error) {
	bundle, err := artifact.Load(artifactDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load artifacts: %w", err)
	}
	policy, err := survival.LoadPolicy(riskPolicyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load risk policy: %w", err)
	}

	fmt.Printf("Model: %s (test R2 %.4f, test RMSE %.2f days, %d features)\n\n",
		bundle.Metadata.ModelName, bundle.Metadata.TestR2, bundle.Metadata.TestRMSE, len(bundle.Metadata.Features))

	return survival.NewPipeline(bundle, policy), survival.NewValidator(), nil
}

func printResult(result survival.PredictionResult) {
	fmt.Println("PREDICTION RESULTS")
	fmt.Printf("   Predicted Survival: %.0f days (%.1f months / %.2f years)\n",
		result.PredictedDays, result.PredictedMonths, result.PredictedYears)
	fmt.Printf("   Risk Category: %s [%s]\n", result.RiskCategory, result.RiskIndicator)
	fmt.Printf("   Recommendation: %s\n", result.Recommendation)
}
