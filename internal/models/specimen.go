package models

// Channel identifies one of the SRS acquisition channels.
type Channel int

const (
	// Protein is the protein-dominant (CH3 stretch) channel.
	Protein Channel = iota

	// Lipid is the lipid-dominant (CH2 stretch) channel.
	Lipid

	// ProteinMinusLipid is the derived protein channel with lipid
	// bleed-through removed.
	ProteinMinusLipid
)

// String returns the file-naming suffix of the channel.
func (c Channel) String() string {
	switch c {
	case Protein:
		return "pro"
	case Lipid:
		return "lip"
	case ProteinMinusLipid:
		return "pro_sub_lip"
	default:
		return "unknown"
	}
}

// Specimen identifies one worm acquisition and the masks derived from it.
type Specimen struct {
	// ID is the acquisition identifier, used in output filenames and in
	// error context
	ID string

	// MaskPath is the whole-body binary mask of the worm
	MaskPath string

	// AnteriorRefPath is the anterior-reference mask (non-zero over the
	// anterior half of the specimen)
	AnteriorRefPath string
}
