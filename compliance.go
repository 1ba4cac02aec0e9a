package starframe

// Compliance presets in m/N, carried from feather/collision.go's material
// compliance table. feather used these for its own 3D contact/attachment
// constraints; here they're repurposed as ready-made stiffness choices
// for AddConstraint/AddWorldAttachment/AddRope's compliance parameter,
// since the rope and distance constraints don't pin a default
// themselves.
const (
	StiffCompliance    = ConcreteCompliance
	ConcreteCompliance = 0.04e-9
	WoodCompliance     = 0.16e-9
	LeatherCompliance  = 14e-8
	TendonCompliance   = 0.2e-7
	RubberCompliance   = 1e-6
	MuscleCompliance   = 0.2e-3
	FatCompliance      = 1e-3
)
