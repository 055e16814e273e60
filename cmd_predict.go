package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"diabetesapi/ml"
)

func newPredictCommand() *cobra.Command {
	var (
		modelPath string
		modelType string
		fv        ml.FeatureVector
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run one prediction offline and print the result as JSON",
		Example: `  diabetesapi predict --gender 0 --age 50 --urea 4.7 --cr 46 --hba1c 4.9 \
    --chol 4.2 --tg 0.9 --hdl 2.4 --ldl 1.4 --vldl 0.5 --bmi 24`,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := ml.LoadModel(modelType, modelPath)
			if err != nil {
				return fmt.Errorf("load model: %w", err)
			}
			result, err := ml.NewPredictor(model).Predict(cmd.Context(), fv)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&modelPath, "model", "models/diabetes_model.json", "Path to the model artifact")
	f.StringVar(&modelType, "model-type", "", "Model type (decision_tree, random_forest); empty uses the artifact's")
	f.IntVar(&fv.Gender, "gender", 0, "Gender code")
	f.IntVar(&fv.AGE, "age", 0, "Age in years")
	f.Float64Var(&fv.Urea, "urea", 0, "Urea")
	f.Float64Var(&fv.Cr, "cr", 0, "Creatinine ratio")
	f.Float64Var(&fv.HbA1c, "hba1c", 0, "HbA1c")
	f.Float64Var(&fv.Chol, "chol", 0, "Cholesterol")
	f.Float64Var(&fv.TG, "tg", 0, "Triglycerides")
	f.Float64Var(&fv.HDL, "hdl", 0, "HDL")
	f.Float64Var(&fv.LDL, "ldl", 0, "LDL")
	f.Float64Var(&fv.VLDL, "vldl", 0, "VLDL")
	f.Float64Var(&fv.BMI, "bmi", 0, "Body mass index")
	for _, name := range []string{"gender", "age", "urea", "cr", "hba1c", "chol", "tg", "hdl", "ldl", "vldl", "bmi"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
