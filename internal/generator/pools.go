package generator

// Word pools for synthetic hospital data. The department list is ordered:
// DEPT001..DEPT020 always map to the same names.

var hospitalNameFragments = []string{
	"General", "Memorial", "Regional", "Community", "University",
	"Medical Center", "St. Mary's", "Sacred Heart", "City", "County",
}

var departmentNames = []string{
	"Emergency", "Cardiology", "Neurology", "Oncology", "Pediatrics",
	"Orthopedics", "Dermatology", "Gastroenterology", "Urology",
	"Radiology", "Anesthesiology", "Pathology", "Surgery",
	"Pulmonology", "Nephrology", "Ophthalmology", "Gynecology",
	"Psychiatry", "Endocrinology", "Rheumatology",
}

var specializations = []string{
	"Cardiology", "Neurology", "Orthopedics", "General Surgery",
	"Pediatrics", "Radiology", "Dermatology", "Oncology",
	"Anesthesiology", "Emergency Medicine", "Psychiatry",
}

var encounterTypes = []string{
	"Inpatient", "Outpatient", "Emergency", "Telemedicine", "Routine Checkup",
}

var visitTypes = []string{
	"Routine", "Follow-up", "Emergency", "Consultation",
}

var amountTypes = []string{
	"Co-pay", "Insurance", "Self-pay", "Medicaid", "Medicare",
}

var linesOfBusiness = []string{
	"Commercial", "Medicaid", "Medicare", "Self-Pay",
}

var genders = []string{"Male", "Female"}
