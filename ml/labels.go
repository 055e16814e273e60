package ml

const UnknownLabel = "Unknown"

const (
	ClassNonDiabetic = 0
	ClassDiabetic    = 1
	ClassPrediabetic = 2
)

var classNames = map[int]string{
	ClassNonDiabetic: "Non-Diabetic",
	ClassDiabetic:    "Diabetic",
	ClassPrediabetic: "Prediabetic",
}

var classMessages = map[int]string{
	ClassNonDiabetic: "Non-diabetic. No worries :)",
	ClassDiabetic:    "Diabetic.",
	ClassPrediabetic: "Prediabetic.",
}

// ClassIDs lists the label table keys in ascending order.
func ClassIDs() []int {
	return []int{ClassNonDiabetic, ClassDiabetic, ClassPrediabetic}
}

// ClassName maps a class id to its label, or UnknownLabel.
func ClassName(id int) string {
	if name, ok := classNames[id]; ok {
		return name
	}
	return UnknownLabel
}

// ClassMessage maps a class id to its advisory message, or UnknownLabel.
func ClassMessage(id int) string {
	if msg, ok := classMessages[id]; ok {
		return msg
	}
	return UnknownLabel
}

func knownClass(id int) bool {
	_, ok := classNames[id]
	return ok
}
