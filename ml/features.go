package ml

// FeatureVector holds one patient's lab measurements.
type FeatureVector struct {
	Gender int
	AGE    int
	Urea   float64
	Cr     float64
	HbA1c  float64
	Chol   float64
	TG     float64
	HDL    float64
	LDL    float64
	VLDL   float64
	BMI    float64
}

// FeatureCount is the width of a model input row.
const FeatureCount = 11

// Row returns the single-row input table in FeatureNames order.
func (f FeatureVector) Row() []float64 {
	return []float64{
		float64(f.Gender),
		float64(f.AGE),
		f.Urea,
		f.Cr,
		f.HbA1c,
		f.Chol,
		f.TG,
		f.HDL,
		f.LDL,
		f.VLDL,
		f.BMI,
	}
}

// FeatureNames is the column order the model was trained with.
func FeatureNames() []string {
	return []string{
		"Gender",
		"AGE",
		"Urea",
		"Cr",
		"HbA1c",
		"Chol",
		"TG",
		"HDL",
		"LDL",
		"VLDL",
		"BMI",
	}
}

// Map returns the measurements keyed by column name.
func (f FeatureVector) Map() map[string]float64 {
	row := f.Row()
	names := FeatureNames()
	values := make(map[string]float64, len(names))
	for i, name := range names {
		values[name] = row[i]
	}
	return values
}
