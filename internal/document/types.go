package document

// ExtractionResult is what the extraction collaborator returns: the E025
// document plus field-level references.
type ExtractionResult struct {
	Document   Document          `json:"document"`
	References []EntityReference `json:"references"`
}

// EntityReference links a dot-notation field path to source segments.
// Normalization does not depend on it; provenance comes from each item.
type EntityReference struct {
	FieldName      string   `json:"field_name"`
	Value          any      `json:"value"`
	SourceSegments []int    `json:"source_segments"`
	Confidence     *float64 `json:"confidence,omitempty"`
}

// Document is the E025 outpatient visit description. Every section is
// optional.
type Document struct {
	Visit            *VisitMetadata    `json:"visit,omitempty"`
	Referral         *Referral         `json:"referral,omitempty"`
	Ambulance        *Ambulance        `json:"ambulance,omitempty"`
	Diagnosis        *Diagnosis        `json:"diagnosis,omitempty"`
	VitalSigns       *VitalSigns       `json:"vital_signs,omitempty"`
	BodyMeasurements *BodyMeasurements `json:"body_measurements,omitempty"`
	ClinicalNotes    *ClinicalNotes    `json:"clinical_notes,omitempty"`
	Treatment        *Treatment        `json:"treatment,omitempty"`
	Certificates     *Certificates     `json:"certificates,omitempty"`
	Restrictions     *Restrictions     `json:"restrictions,omitempty"`
	Allergies        []Allergy         `json:"allergies,omitempty"`
	Vaccinations     []Vaccination     `json:"vaccinations,omitempty"`
}

type VitalSigns struct {
	Items []VitalSignItem `json:"items,omitempty"`
}

// VitalSignItem is a single measurement, e.g. Temperatūra / "36.6°C".
type VitalSignItem struct {
	Name           string `json:"name"`
	Value          string `json:"value"`
	SourceSegments []int  `json:"source_segments"`
}

// Allergy types as produced by the extractor: vaistai (drug), maistas (food),
// kita (other).
const (
	AllergyDrug  = "vaistai"
	AllergyFood  = "maistas"
	AllergyOther = "kita"
)

type Allergy struct {
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	Date           *string `json:"date,omitempty"`
	SourceSegments []int   `json:"source_segments,omitempty"`
}

type Diagnosis struct {
	Items []DiagnosisItem `json:"items,omitempty"`
}

// Diagnosis certainty codes.
const (
	CertaintyConfirmed = "+"
	CertaintyExcluded  = "-"
	CertaintySuspected = "0"
)

type DiagnosisItem struct {
	Diagnosis          string  `json:"diagnosis"`
	DiagnosisCode      *string `json:"diagnosis_code,omitempty"`
	DiagnosisCertainty *string `json:"diagnosis_certainty,omitempty"`
	SourceSegments     []int   `json:"source_segments"`
}

// ClinicalStatement is a single free-text clinical fact.
type ClinicalStatement struct {
	Statement      string `json:"statement"`
	SourceSegments []int  `json:"source_segments"`
}

type ClinicalNotes struct {
	ComplaintsAnamnesis         []ClinicalStatement `json:"complaints_anamnesis,omitempty"`
	ObjectiveCondition          []ClinicalStatement `json:"objective_condition,omitempty"`
	TestsConsultationsPlan      []ClinicalStatement `json:"tests_consultations_plan,omitempty"`
	PerformedTestsConsultations []ClinicalStatement `json:"performed_tests_consultations,omitempty"`
	ConditionOnDischarge        []ClinicalStatement `json:"condition_on_discharge,omitempty"`
	Notes                       []ClinicalStatement `json:"notes,omitempty"`
}

// Treatment kinds.
const (
	TreatmentMedication     = "medication"
	TreatmentNonMedication  = "non_medication"
	TreatmentPrescription   = "prescription"
	TreatmentReferral       = "referral"
	TreatmentRecommendation = "recommendation"
	TreatmentTest           = "test"
)

type Treatment struct {
	Items []TreatmentItem `json:"items,omitempty"`
}

type TreatmentItem struct {
	Description    string `json:"description"`
	Type           string `json:"type"`
	SourceSegments []int  `json:"source_segments"`
}

type VisitMetadata struct {
	Date             *string `json:"date,omitempty"`
	Time             *string `json:"time,omitempty"`
	RecordNumber     *string `json:"record_number,omitempty"`
	Status           *string `json:"status,omitempty"` // darbinis | galutinis
	Physician        *string `json:"physician,omitempty"`
	HelpType         *string `json:"help_type,omitempty"`         // butinoji | planine | kita
	ConsultationType *string `json:"consultation_type,omitempty"` // tiesioginis | nuotolinis | kitas
	ServiceMethod    *string `json:"service_method,omitempty"`
}

type Referral struct {
	ArrivedWithReferral  *bool   `json:"arrived_with_referral,omitempty"`
	ReferringInstitution *string `json:"referring_institution,omitempty"`
	ReferringPhysician   *string `json:"referring_physician,omitempty"`
	ReferralDiagnosis    *string `json:"referral_diagnosis,omitempty"`
}

type Ambulance struct {
	ArrivedByAmbulance   *bool   `json:"arrived_by_ambulance,omitempty"`
	AmbulanceInstitution *string `json:"ambulance_institution,omitempty"`
	AmbulanceDiagnosis   *string `json:"ambulance_diagnosis,omitempty"`
}

type BodyMeasurements struct {
	Weight             *float64 `json:"weight,omitempty"`
	Height             *int     `json:"height,omitempty"`
	BMI                *float64 `json:"bmi,omitempty"`
	ChestCircumference *int     `json:"chest_circumference,omitempty"`
	HipCircumference   *int     `json:"hip_circumference,omitempty"`
	WaistCircumference *int     `json:"waist_circumference,omitempty"`
	HeadCircumference  *int     `json:"head_circumference,omitempty"`
}

type Certificates struct {
	DisabilityCertificate *bool   `json:"disability_certificate,omitempty"`
	MaternityCertificate  *bool   `json:"maternity_certificate,omitempty"`
	MedicalCertificate    *bool   `json:"medical_certificate,omitempty"`
	DisabilityNumber      *string `json:"disability_number,omitempty"`
	DisabilityStartDate   *string `json:"disability_start_date,omitempty"`
	DisabilityEndDate     *string `json:"disability_end_date,omitempty"`
	DisabilityDescription *string `json:"disability_description,omitempty"`
}

type Restrictions struct {
	CannotDrive     *bool   `json:"cannot_drive,omitempty"`
	CannotDriveDate *string `json:"cannot_drive_date,omitempty"`
	CannotUseWeapon *bool   `json:"cannot_use_weapon,omitempty"`
}

type Vaccination struct {
	Name string  `json:"name"`
	Date *string `json:"date,omitempty"`
}
