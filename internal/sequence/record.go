// Copyright (C) 2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package sequence holds the sequence metadata records exchanged with the
// data entry API and their CSV encodings.
package sequence

// RecordColumns is the number of positional columns in an input row.
const RecordColumns = 9

// Record is one sequence metadata row. Field N maps to input CSV column N.
type Record struct {
	OrganizationIdentifier  string `json:"organizationIdentifier"`
	PatientLocalIdentifier  string `json:"patientLocalIdentifier"`
	SpecimenLocalIdentifier string `json:"specimenLocalIdentifier"`
	SpecimenCollectedDate   string `json:"specimenCollectedDate"`
	NCBISourceOrganism      string `json:"ncbiSourceOrganism"`
	NCBITaxonID             string `json:"ncbiTaxonId"`
	NCBIBioProjectAccession string `json:"ncbiBioProjectAccession"`
	NCBIBioSampleAccession  string `json:"ncbiBioSampleAccession"`
	NCBISRAAccession        string `json:"ncbiSraAccession"`
}

// Report is the server's verdict on a single uploaded record.
type Report struct {
	Record
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UploadOptions are passed to the API as query parameters.
type UploadOptions struct {
	// DryRun asks the server to validate the batch without persisting it.
	DryRun bool
	// Truncate asks the server to delete all existing sequences first.
	Truncate bool
	// StopOnError asks the server to stop at the first rejected record.
	StopOnError bool
}

var recordHeader = []string{
	"organization_identifier",
	"patient_local_identifier",
	"specimen_local_identifier",
	"specimen_collected_date",
	"ncbi_source_organism",
	"ncbi_taxon_id",
	"ncbi_bio_project_accession",
	"ncbi_bio_sample_accession",
	"ncbi_sra_accession",
}

// ReportHeader returns the column names of a report file, in order.
func ReportHeader() []string {
	h := make([]string, 0, len(recordHeader)+2)
	h = append(h, recordHeader...)
	return append(h, "status", "message")
}

// recordFromFields builds a Record from positional CSV fields. Missing
// trailing fields stay empty and extra fields are ignored.
func recordFromFields(fields []string) Record {
	var cols [RecordColumns]string
	copy(cols[:], fields)
	return Record{
		OrganizationIdentifier:  cols[0],
		PatientLocalIdentifier:  cols[1],
		SpecimenLocalIdentifier: cols[2],
		SpecimenCollectedDate:   cols[3],
		NCBISourceOrganism:      cols[4],
		NCBITaxonID:             cols[5],
		NCBIBioProjectAccession: cols[6],
		NCBIBioSampleAccession:  cols[7],
		NCBISRAAccession:        cols[8],
	}
}

func (r Record) fields() []string {
	return []string{
		r.OrganizationIdentifier,
		r.PatientLocalIdentifier,
		r.SpecimenLocalIdentifier,
		r.SpecimenCollectedDate,
		r.NCBISourceOrganism,
		r.NCBITaxonID,
		r.NCBIBioProjectAccession,
		r.NCBIBioSampleAccession,
		r.NCBISRAAccession,
	}
}

func (r Report) fields() []string {
	return append(r.Record.fields(), r.Status, r.Message)
}
