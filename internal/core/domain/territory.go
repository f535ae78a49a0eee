package domain

// Territory is one row of the static territorial reference dataset:
// a comune together with its province and region. The dataset is loaded
// once and never mutated.
type Territory struct {
	// Municipality is the comune name.
	Municipality string

	// MunicipalityCode is the ISTAT code of the comune, when present.
	MunicipalityCode string

	// Province is the province name.
	Province string

	// ProvinceCode is the province sigla (e.g. "VT"), when present.
	ProvinceCode string

	// Region is the region name.
	Region string

	// RegionCode is the ISTAT code of the region, when present.
	RegionCode string
}

// LocationEvent is what the map collaborator emits when the user picks a
// point. The core translates it into a Scope before publishing; the map
// itself never writes scopes directly.
type LocationEvent struct {
	// Name is the display name of the picked location. It may carry a
	// locality-type prefix such as "Comune di Tarquinia".
	Name string

	// Lat and Lon are the picked coordinates.
	Lat float64
	Lon float64
}

// RemoteFile describes a previously ingested document as reported by the
// ingestion backend's read endpoint.
type RemoteFile struct {
	// Name is the stored file name.
	Name string

	// Size is the file size in bytes.
	Size int64

	// Modified is the server-side modification time as a Unix timestamp.
	Modified float64
}
