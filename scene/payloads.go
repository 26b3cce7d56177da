package scene

import "github.com/cofenberg/pixellight-sub004/types"

// CameraPayload holds the projection settings of camera nodes.
type CameraPayload struct {
	FOV    float32
	Aspect float32
	ZNear  float32
	ZFar   float32
}

func newCamera() Payload {
	return &CameraPayload{FOV: 45, Aspect: 1, ZNear: 0.01, ZFar: 1000}
}

func (p *CameraPayload) Attributes() []Attribute {
	return []Attribute{
		floatAttr("FOV", p.FOV, 45),
		floatAttr("Aspect", p.Aspect, 1),
		floatAttr("ZNear", p.ZNear, 0.01),
		floatAttr("ZFar", p.ZFar, 1000),
	}
}

func (p *CameraPayload) SetAttribute(name, value string) (bool, error) {
	var dst *float32
	switch name {
	case "FOV":
		dst = &p.FOV
	case "Aspect":
		dst = &p.Aspect
	case "ZNear":
		dst = &p.ZNear
	case "ZFar":
		dst = &p.ZFar
	default:
		return false, nil
	}
	v, err := parseFloat(value)
	if err != nil {
		return true, err
	}
	*dst = v
	return true, nil
}

// LightPayload holds the settings shared by all light nodes. Spot lights
// additionally use the cone angles.
type LightPayload struct {
	Color types.Vec3
	Range float32

	spot       bool
	OuterAngle float32
	InnerAngle float32
}

var defaultLightColor = types.Vec3{1, 1, 1}

func newLight() Payload {
	return &LightPayload{Color: defaultLightColor, Range: 1}
}

func newSpotLight() Payload {
	return &LightPayload{Color: defaultLightColor, Range: 1, spot: true, OuterAngle: 45, InnerAngle: 35}
}

func (p *LightPayload) Attributes() []Attribute {
	attrs := []Attribute{
		vecAttr("Color", p.Color, defaultLightColor),
		floatAttr("Range", p.Range, 1),
	}
	if p.spot {
		attrs = append(attrs, floatAttr("OuterAngle", p.OuterAngle, 45), floatAttr("InnerAngle", p.InnerAngle, 35))
	}
	return attrs
}

func (p *LightPayload) SetAttribute(name, value string) (bool, error) {
	var dst *float32
	switch {
	case name == "Color":
		v, err := types.ParseVec3(value)
		if err != nil {
			return true, err
		}
		p.Color = v
		return true, nil
	case name == "Range":
		dst = &p.Range
	case name == "OuterAngle" && p.spot:
		dst = &p.OuterAngle
	case name == "InnerAngle" && p.spot:
		dst = &p.InnerAngle
	default:
		return false, nil
	}
	v, err := parseFloat(value)
	if err != nil {
		return true, err
	}
	*dst = v
	return true, nil
}

// stringPayload exposes a single string property.
type stringPayload struct {
	name  string
	value string
}

func (p *stringPayload) Attributes() []Attribute {
	return []Attribute{{Name: p.name, Value: p.value}}
}

func (p *stringPayload) SetAttribute(name, value string) (bool, error) {
	if name != p.name {
		return false, nil
	}
	p.value = value
	return true, nil
}

// Get the property value.
func (p *stringPayload) Value() string { return p.value }

func newMesh() Payload   { return &stringPayload{name: "Mesh"} }
func newSpline() Payload { return &stringPayload{name: "Filename"} }

// PortalPayload holds the target of a cell portal. The target is resolved
// into a node handle by Container.PostProcess.
type PortalPayload struct {
	TargetCell string
	target     NodeID
}

func newPortal() Payload {
	return &PortalPayload{target: NoNode}
}

func (p *PortalPayload) Attributes() []Attribute {
	return []Attribute{{Name: "TargetCell", Value: p.TargetCell}}
}

func (p *PortalPayload) SetAttribute(name, value string) (bool, error) {
	if name != "TargetCell" {
		return false, nil
	}
	p.TargetCell = value
	p.target = NoNode
	return true, nil
}

// The resolved target cell, or NoNode.
func (p *PortalPayload) Target() NodeID { return p.target }

// CellPayload lists the portals leading out of and into a cell. Neither
// list owns the referenced portal nodes.
type CellPayload struct {
	outgoing []NodeID
	incoming []NodeID
}

func newCell() Payload { return &CellPayload{} }

func (p *CellPayload) Attributes() []Attribute { return nil }

func (p *CellPayload) SetAttribute(string, string) (bool, error) { return false, nil }

func (p *CellPayload) Outgoing() []NodeID { return p.outgoing }
func (p *CellPayload) Incoming() []NodeID { return p.incoming }

// VelocityPayload is used by the linear animation modifiers.
type VelocityPayload struct {
	Velocity types.Vec3
	def      types.Vec3
}

func newRotationAnimation() Payload {
	def := types.Vec3{0, 0, 10}
	return &VelocityPayload{Velocity: def, def: def}
}

func newPositionAnimation() Payload {
	return &VelocityPayload{}
}

func (p *VelocityPayload) Attributes() []Attribute {
	return []Attribute{vecAttr("Velocity", p.Velocity, p.def)}
}

func (p *VelocityPayload) SetAttribute(name, value string) (bool, error) {
	if name != "Velocity" {
		return false, nil
	}
	v, err := types.ParseVec3(value)
	if err != nil {
		return true, err
	}
	p.Velocity = v
	return true, nil
}

func newAnchor() Payload { return &stringPayload{name: "AttachedNode"} }
