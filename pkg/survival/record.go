package survival

// Training column names. The three hormone status columns contain a literal
// space because that is how the training dataset named them.
const (
	ColAge         = "Age"
	ColGender      = "Gender"
	ColProtein1    = "Protein1"
	ColProtein2    = "Protein2"
	ColProtein3    = "Protein3"
	ColProtein4    = "Protein4"
	ColTumourStage = "Tumour_Stage"
	ColHistology   = "Histology"
	ColERStatus    = "ER status"
	ColPRStatus    = "PR status"
	ColHER2Status  = "HER2 status"
	ColSurgeryType = "Surgery_type"
)

// PatientInput is a raw submission. JSON tags reproduce the wire names of
// the original API, embedded spaces included.
type PatientInput struct {
	Age         int     `json:"Age"`
	Gender      string  `json:"Gender"`
	Protein1    float64 `json:"Protein1"`
	Protein2    float64 `json:"Protein2"`
	Protein3    float64 `json:"Protein3"`
	Protein4    float64 `json:"Protein4"`
	TumourStage string  `json:"Tumour_Stage"`
	Histology   string  `json:"Histology"`
	ERStatus    string  `json:"ER status"`
	PRStatus    string  `json:"PR status"`
	HER2Status  string  `json:"HER2 status"`
	SurgeryType string  `json:"Surgery_type"`
}

// PatientRecord is a validated, normalized case ready for feature
// alignment. Enumerated fields carry their canonical casing.
type PatientRecord struct {
	Age         int
	Gender      string
	Protein1    float64
	Protein2    float64
	Protein3    float64
	Protein4    float64
	TumourStage string
	Histology   string
	ERStatus    string
	PRStatus    string
	HER2Status  string
	SurgeryType string
}

// columns keys the record by training column names. Numeric fields stay
// numeric; categorical fields stay strings until the encoder pass.
func (r PatientRecord) columns() map[string]interface{} {
	return map[string]interface{}{
		ColAge:         float64(r.Age),
		ColGender:      r.Gender,
		ColProtein1:    r.Protein1,
		ColProtein2:    r.Protein2,
		ColProtein3:    r.Protein3,
		ColProtein4:    r.Protein4,
		ColTumourStage: r.TumourStage,
		ColHistology:   r.Histology,
		ColERStatus:    r.ERStatus,
		ColPRStatus:    r.PRStatus,
		ColHER2Status:  r.HER2Status,
		ColSurgeryType: r.SurgeryType,
	}
}
