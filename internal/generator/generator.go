// Package generator produces synthetic relational hospital data as CSV files:
// hospitals, departments, providers, patients, encounters, and transactions.
// Output is reproducible for a given seed and suitable for bulk loading.
package generator

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Sizes controls the row counts for one full generation run.
type Sizes struct {
	Hospitals    int
	Providers    int
	Patients     int
	Encounters   int
	Transactions int
}

// DefaultSizes returns the standard volumes for a demo dataset.
func DefaultSizes() Sizes {
	return Sizes{
		Hospitals:    1,
		Providers:    50,
		Patients:     5000,
		Encounters:   10000,
		Transactions: 10000,
	}
}

// Summary reports what a full generation run produced.
type Summary struct {
	Hospitals    int           `json:"hospitals"`
	Departments  int           `json:"departments"`
	Providers    int           `json:"providers"`
	Patients     int           `json:"patients"`
	Encounters   int           `json:"encounters"`
	Transactions int           `json:"transactions"`
	Files        []string      `json:"files"`
	Duration     time.Duration `json:"duration"`
}

// Generator produces seeded synthetic records. A single seed drives both the
// fake-data provider and the range/choice RNG, so two generators constructed
// with the same non-zero seed emit identical data.
type Generator struct {
	faker     *gofakeit.Faker
	rng       *rand.Rand
	batchTime time.Time
	usedNPIs  map[int64]bool
}

// New returns a generator for the given seed. Seed 0 picks a time-based seed.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		faker:     gofakeit.New(uint64(seed)),
		rng:       rand.New(rand.NewSource(seed)),
		batchTime: time.Now(),
		usedNPIs:  make(map[int64]bool),
	}
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

// randRange mirrors an inclusive [lo, hi] integer draw.
func (g *Generator) randRange(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) address() string {
	a := g.faker.Address()
	return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.Zip)
}

func (g *Generator) dateOfBirth() time.Time {
	now := time.Now()
	return g.faker.DateRange(now.AddDate(-100, 0, 0), now)
}

func (g *Generator) dateThisDecade() time.Time {
	now := time.Now()
	decadeStart := time.Date(now.Year()-now.Year()%10, time.January, 1, 0, 0, 0, 0, time.UTC)
	return g.faker.DateRange(decadeStart, now)
}

func (g *Generator) dateThisYear() time.Time {
	now := time.Now()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return g.faker.DateRange(yearStart, now)
}

// uniqueNPI draws an unused 10-digit National Provider Identifier.
func (g *Generator) uniqueNPI() int64 {
	for {
		npi := 1000000000 + g.rng.Int63n(9000000000)
		if !g.usedNPIs[npi] {
			g.usedNPIs[npi] = true
			return npi
		}
	}
}

// GenerateHospitals writes hospitals.csv with n rows. Names are a random
// fragment joined with the running index and are not guaranteed unique.
func (g *Generator) GenerateHospitals(outDir string, n int) ([]Hospital, error) {
	hospitals := make([]Hospital, 0, n)
	for i := 1; i <= n; i++ {
		hospitals = append(hospitals, Hospital{
			HospitalID:  fmt.Sprintf("HOSP%d", i),
			Name:        fmt.Sprintf("%s Hospital %d", g.pick(hospitalNameFragments), i),
			Address:     g.address(),
			PhoneNumber: g.faker.PhoneFormatted(),
			CreatedAt:   g.batchTime,
			UpdatedAt:   g.batchTime,
		})
	}

	records := make([][]string, len(hospitals))
	for i, h := range hospitals {
		records[i] = h.record()
	}
	if err := writeCSV(filepath.Join(outDir, "hospitals.csv"), hospitalColumns, records); err != nil {
		return nil, err
	}
	return hospitals, nil
}

// GenerateDepartments writes the fixed 20-department list for one hospital.
func (g *Generator) GenerateDepartments(outDir, hospitalID string) ([]Department, error) {
	departments := make([]Department, 0, len(departmentNames))
	for i, name := range departmentNames {
		departments = append(departments, Department{
			HospitalID: hospitalID,
			DeptID:     fmt.Sprintf("DEPT%03d", i+1),
			Name:       name,
			CreatedAt:  g.batchTime,
			UpdatedAt:  g.batchTime,
		})
	}

	records := make([][]string, len(departments))
	for i, d := range departments {
		records[i] = d.record()
	}
	path := filepath.Join(outDir, strings.ToLower(hospitalID)+"_departments.csv")
	if err := writeCSV(path, departmentColumns, records); err != nil {
		return nil, err
	}
	return departments, nil
}

// GenerateProviders writes n provider rows for one hospital. Department
// assignment is drawn from the fixed DEPT001..DEPT020 range independently of
// any generated department count.
func (g *Generator) GenerateProviders(outDir string, n int, hospitalID string) ([]Provider, error) {
	providers := make([]Provider, 0, n)
	for i := 1; i <= n; i++ {
		providers = append(providers, Provider{
			HospitalID:     hospitalID,
			ProviderID:     fmt.Sprintf("PROV%04d", i),
			FirstName:      g.faker.FirstName(),
			LastName:       g.faker.LastName(),
			Specialization: g.pick(specializations),
			DeptID:         fmt.Sprintf("DEPT%03d", g.randRange(1, 20)),
			NPI:            g.uniqueNPI(),
			CreatedAt:      g.batchTime,
			UpdatedAt:      g.batchTime,
		})
	}

	records := make([][]string, len(providers))
	for i, p := range providers {
		records[i] = p.record()
	}
	path := filepath.Join(outDir, strings.ToLower(hospitalID)+"_providers.csv")
	if err := writeCSV(path, providerColumns, records); err != nil {
		return nil, err
	}
	return providers, nil
}

// GeneratePatients writes n patient rows with sequential ids
// {hospitalID}-000001 .. {hospitalID}-{n}.
func (g *Generator) GeneratePatients(outDir string, n int, hospitalID string) ([]Patient, error) {
	patients := make([]Patient, 0, n)
	for i := 1; i <= n; i++ {
		patients = append(patients, Patient{
			HospitalID:   hospitalID,
			PatientID:    fmt.Sprintf("%s-%06d", hospitalID, i),
			FirstName:    g.faker.FirstName(),
			LastName:     g.faker.LastName(),
			MiddleName:   string(rune('A' + g.rng.Intn(26))),
			SSN:          g.faker.SSN(),
			PhoneNumber:  g.faker.PhoneFormatted(),
			Gender:       g.pick(genders),
			DOB:          g.dateOfBirth(),
			Address:      g.address(),
			ModifiedDate: g.dateThisDecade(),
			CreatedAt:    g.batchTime,
			UpdatedAt:    g.batchTime,
		})
	}

	records := make([][]string, len(patients))
	for i, p := range patients {
		records[i] = p.record()
	}
	path := filepath.Join(outDir, strings.ToLower(hospitalID)+"_patients.csv")
	if err := writeCSV(path, patientColumns, records); err != nil {
		return nil, err
	}
	return patients, nil
}

// GenerateEncounters writes n encounter rows. Patient references are drawn
// from [1, numPatients]; provider and department references come from the
// fixed PROV0001..PROV0050 and DEPT001..DEPT020 ranges. Referential
// consistency is intentionally not validated.
func (g *Generator) GenerateEncounters(outDir string, n int, hospitalID string, numPatients int) ([]Encounter, error) {
	if numPatients < 1 {
		numPatients = 1
	}
	procedureCodes := make([]int, 1000)
	for i := range procedureCodes {
		procedureCodes[i] = g.randRange(10000, 99999)
	}

	encounters := make([]Encounter, 0, n)
	for i := 1; i <= n; i++ {
		encounters = append(encounters, Encounter{
			HospitalID:    hospitalID,
			EncounterID:   fmt.Sprintf("ENC%06d", i),
			PatientID:     fmt.Sprintf("%s-%06d", hospitalID, g.randRange(1, numPatients)),
			EncounterDate: g.dateThisDecade(),
			EncounterType: g.pick(encounterTypes),
			ProviderID:    fmt.Sprintf("PROV%04d", g.randRange(1, 50)),
			DepartmentID:  fmt.Sprintf("DEPT%03d", g.randRange(1, 20)),
			ProcedureCode: procedureCodes[g.rng.Intn(len(procedureCodes))],
			InsertedDate:  g.dateThisDecade(),
			ModifiedDate:  g.dateThisDecade(),
			CreatedAt:     g.batchTime,
			UpdatedAt:     g.batchTime,
		})
	}

	records := make([][]string, len(encounters))
	for i, e := range encounters {
		records[i] = e.record()
	}
	path := filepath.Join(outDir, strings.ToLower(hospitalID)+"_encounters.csv")
	if err := writeCSV(path, encounterColumns, records); err != nil {
		return nil, err
	}
	return encounters, nil
}

// GenerateTransactions writes n transaction rows. Encounter references come
// from the fixed [1, 10000] range regardless of how many encounters were
// actually generated, and PaidAmount is sampled independently of Amount.
func (g *Generator) GenerateTransactions(outDir string, n int, hospitalID string, numPatients int) ([]Transaction, error) {
	if numPatients < 1 {
		numPatients = 1
	}
	icdCodes := make([]string, 100)
	for i := range icdCodes {
		icdCodes[i] = fmt.Sprintf("I%d.%d", g.randRange(10, 99), g.rng.Intn(10))
	}
	procedureCodes := make([]int, 1000)
	for i := range procedureCodes {
		procedureCodes[i] = g.randRange(10000, 99999)
	}

	transactions := make([]Transaction, 0, n)
	for i := 1; i <= n; i++ {
		transactions = append(transactions, Transaction{
			HospitalID:     hospitalID,
			TransactionID:  fmt.Sprintf("TRANS%06d", i),
			EncounterID:    fmt.Sprintf("ENC%06d", g.randRange(1, 10000)),
			PatientID:      fmt.Sprintf("%s-%06d", hospitalID, g.randRange(1, numPatients)),
			ProviderID:     fmt.Sprintf("PROV%04d", g.randRange(1, 50)),
			DeptID:         fmt.Sprintf("DEPT%03d", g.randRange(1, 20)),
			VisitDate:      g.dateThisYear(),
			ServiceDate:    g.dateThisYear(),
			PaidDate:       g.dateThisYear(),
			VisitType:      g.pick(visitTypes),
			Amount:         roundCents(50 + g.rng.Float64()*950),
			AmountType:     g.pick(amountTypes),
			PaidAmount:     roundCents(20 + g.rng.Float64()*780),
			ClaimID:        fmt.Sprintf("CLAIM%d", g.randRange(100000, 999999)),
			PayorID:        fmt.Sprintf("PAYOR%d", g.randRange(1000, 9999)),
			ProcedureCode:  procedureCodes[g.rng.Intn(len(procedureCodes))],
			ICDCode:        icdCodes[g.rng.Intn(len(icdCodes))],
			LineOfBusiness: g.pick(linesOfBusiness),
			MedicaidID:     fmt.Sprintf("MEDI%d", g.randRange(10000, 99999)),
			MedicareID:     fmt.Sprintf("MCARE%d", g.randRange(10000, 99999)),
			InsertDate:     g.dateThisDecade(),
			ModifiedDate:   g.dateThisDecade(),
			CreatedAt:      g.batchTime,
			UpdatedAt:      g.batchTime,
		})
	}

	records := make([][]string, len(transactions))
	for i, t := range transactions {
		records[i] = t.record()
	}
	path := filepath.Join(outDir, strings.ToLower(hospitalID)+"_transactions.csv")
	if err := writeCSV(path, transactionColumns, records); err != nil {
		return nil, err
	}
	return transactions, nil
}

// GenerateAll runs the full pipeline into outDir: hospitals first, then the
// per-hospital entity files for the first hospital id.
func (g *Generator) GenerateAll(outDir string, sizes Sizes) (*Summary, error) {
	start := time.Now()

	hospitals, err := g.GenerateHospitals(outDir, sizes.Hospitals)
	if err != nil {
		return nil, err
	}

	hospitalID := "HOSP1"
	if len(hospitals) > 0 {
		hospitalID = hospitals[0].HospitalID
	}

	departments, err := g.GenerateDepartments(outDir, hospitalID)
	if err != nil {
		return nil, err
	}
	providers, err := g.GenerateProviders(outDir, sizes.Providers, hospitalID)
	if err != nil {
		return nil, err
	}
	patients, err := g.GeneratePatients(outDir, sizes.Patients, hospitalID)
	if err != nil {
		return nil, err
	}
	encounters, err := g.GenerateEncounters(outDir, sizes.Encounters, hospitalID, sizes.Patients)
	if err != nil {
		return nil, err
	}
	transactions, err := g.GenerateTransactions(outDir, sizes.Transactions, hospitalID, sizes.Patients)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(hospitalID)
	return &Summary{
		Hospitals:    len(hospitals),
		Departments:  len(departments),
		Providers:    len(providers),
		Patients:     len(patients),
		Encounters:   len(encounters),
		Transactions: len(transactions),
		Files: []string{
			"hospitals.csv",
			lower + "_departments.csv",
			lower + "_providers.csv",
			lower + "_patients.csv",
			lower + "_encounters.csv",
			lower + "_transactions.csv",
		},
		Duration: time.Since(start),
	}, nil
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// writeCSV writes a header row followed by records. A zero-row call still
// produces a header-only file.
func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write records to %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
