package generator

import (
	"strconv"
	"time"
)

// Entity record types. Each kind knows its CSV column set and renders rows in
// the same order, because the loader COPYs files positionally into tables
// whose columns mirror these headers.

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05.000000"
)

// Hospital maps to the hospitals table.
type Hospital struct {
	HospitalID  string
	Name        string
	Address     string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var hospitalColumns = []string{
	"hospitalID", "Name", "Address", "PhoneNumber",
	"created_at", "updated_at", "deleted_at",
}

func (h Hospital) record() []string {
	return []string{
		h.HospitalID, h.Name, h.Address, h.PhoneNumber,
		h.CreatedAt.Format(timestampLayout), h.UpdatedAt.Format(timestampLayout), "",
	}
}

// Department maps to the departments table.
type Department struct {
	HospitalID string
	DeptID     string
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

var departmentColumns = []string{
	"hospitalID", "DeptID", "Name",
	"created_at", "updated_at", "deleted_at",
}

func (d Department) record() []string {
	return []string{
		d.HospitalID, d.DeptID, d.Name,
		d.CreatedAt.Format(timestampLayout), d.UpdatedAt.Format(timestampLayout), "",
	}
}

// Provider maps to the providers table.
type Provider struct {
	HospitalID     string
	ProviderID     string
	FirstName      string
	LastName       string
	Specialization string
	DeptID         string
	NPI            int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

var providerColumns = []string{
	"hospitalID", "ProviderID", "FirstName", "LastName",
	"Specialization", "DeptID", "NPI",
	"created_at", "updated_at", "deleted_at",
}

func (p Provider) record() []string {
	return []string{
		p.HospitalID, p.ProviderID, p.FirstName, p.LastName,
		p.Specialization, p.DeptID, strconv.FormatInt(p.NPI, 10),
		p.CreatedAt.Format(timestampLayout), p.UpdatedAt.Format(timestampLayout), "",
	}
}

// Patient maps to the patients table.
type Patient struct {
	HospitalID   string
	PatientID    string
	FirstName    string
	LastName     string
	MiddleName   string
	SSN          string
	PhoneNumber  string
	Gender       string
	DOB          time.Time
	Address      string
	ModifiedDate time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var patientColumns = []string{
	"hospitalID", "PatientID", "FirstName", "LastName", "MiddleName",
	"SSN", "PhoneNumber", "Gender", "DOB", "Address", "ModifiedDate",
	"created_at", "updated_at", "deleted_at",
}

func (p Patient) record() []string {
	return []string{
		p.HospitalID, p.PatientID, p.FirstName, p.LastName, p.MiddleName,
		p.SSN, p.PhoneNumber, p.Gender, p.DOB.Format(dateLayout),
		p.Address, p.ModifiedDate.Format(dateLayout),
		p.CreatedAt.Format(timestampLayout), p.UpdatedAt.Format(timestampLayout), "",
	}
}

// Encounter maps to the encounters table.
type Encounter struct {
	HospitalID    string
	EncounterID   string
	PatientID     string
	EncounterDate time.Time
	EncounterType string
	ProviderID    string
	DepartmentID  string
	ProcedureCode int
	InsertedDate  time.Time
	ModifiedDate  time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var encounterColumns = []string{
	"hospitalID", "EncounterID", "PatientID", "EncounterDate",
	"EncounterType", "ProviderID", "DepartmentID", "ProcedureCode",
	"InsertedDate", "ModifiedDate",
	"created_at", "updated_at", "deleted_at",
}

func (e Encounter) record() []string {
	return []string{
		e.HospitalID, e.EncounterID, e.PatientID, e.EncounterDate.Format(dateLayout),
		e.EncounterType, e.ProviderID, e.DepartmentID, strconv.Itoa(e.ProcedureCode),
		e.InsertedDate.Format(dateLayout), e.ModifiedDate.Format(dateLayout),
		e.CreatedAt.Format(timestampLayout), e.UpdatedAt.Format(timestampLayout), "",
	}
}

// Transaction maps to the transactions table.
type Transaction struct {
	HospitalID     string
	TransactionID  string
	EncounterID    string
	PatientID      string
	ProviderID     string
	DeptID         string
	VisitDate      time.Time
	ServiceDate    time.Time
	PaidDate       time.Time
	VisitType      string
	Amount         float64
	AmountType     string
	PaidAmount     float64
	ClaimID        string
	PayorID        string
	ProcedureCode  int
	ICDCode        string
	LineOfBusiness string
	MedicaidID     string
	MedicareID     string
	InsertDate     time.Time
	ModifiedDate   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

var transactionColumns = []string{
	"hospitalID", "TransactionID", "EncounterID", "PatientID", "ProviderID",
	"DeptID", "VisitDate", "ServiceDate", "PaidDate", "VisitType",
	"Amount", "AmountType", "PaidAmount", "ClaimID", "PayorID",
	"ProcedureCode", "ICDCode", "LineOfBusiness", "MedicaidID", "MedicareID",
	"InsertDate", "ModifiedDate",
	"created_at", "updated_at", "deleted_at",
}

func (t Transaction) record() []string {
	return []string{
		t.HospitalID, t.TransactionID, t.EncounterID, t.PatientID, t.ProviderID,
		t.DeptID, t.VisitDate.Format(dateLayout), t.ServiceDate.Format(dateLayout),
		t.PaidDate.Format(dateLayout), t.VisitType,
		strconv.FormatFloat(t.Amount, 'f', 2, 64), t.AmountType,
		strconv.FormatFloat(t.PaidAmount, 'f', 2, 64), t.ClaimID, t.PayorID,
		strconv.Itoa(t.ProcedureCode), t.ICDCode, t.LineOfBusiness,
		t.MedicaidID, t.MedicareID,
		t.InsertDate.Format(dateLayout), t.ModifiedDate.Format(dateLayout),
		t.CreatedAt.Format(timestampLayout), t.UpdatedAt.Format(timestampLayout), "",
	}
}
