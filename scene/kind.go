package scene

// NodeKind identifies the variant of a scene node.
type NodeKind uint8

const (
	KindContainer NodeKind = iota
	KindCell
	KindCamera
	KindLight
	KindObject
	KindSpline
	KindCellPortal
	KindAntiPortal
	KindHelper
	KindUnknown
	KindSceneRoot

	numKinds = int(KindSceneRoot) + 1
)

var kindNames = [numKinds]string{
	"Container",
	"Cell",
	"Camera",
	"Light",
	"Object",
	"Spline",
	"CellPortal",
	"AntiPortal",
	"Helper",
	"Unknown",
	"SceneRoot",
}

func (k NodeKind) String() string {
	if int(k) < numKinds {
		return kindNames[k]
	}
	return "Invalid"
}
