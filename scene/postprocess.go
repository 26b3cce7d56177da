package scene

// Resolve the targets of all cell portals below the container and rebuild
// the incoming and outgoing portal lists of every cell. Portal targets are
// paths relative to the container owning the portal.
//
// Unresolved portals and cells that can only be entered or only be left are
// logged as warnings.
func (c *Container) PostProcess() (resolved, unresolved int) {
	var cells, portals []*Node
	c.Walk(func(n *Node) {
		switch n.kind {
		case KindCell:
			if cp := cellPayload(n); cp != nil {
				cp.incoming = nil
				cp.outgoing = nil
				cells = append(cells, n)
			}
		case KindCellPortal:
			portals = append(portals, n)
		}
	})

	for _, portal := range portals {
		pp, ok := portal.payload.(*PortalPayload)
		if !ok {
			continue
		}
		pp.target = NoNode

		owner := portal.Container()
		var target *Node
		if owner != nil && pp.TargetCell != "" {
			target = owner.Get(pp.TargetCell)
		}
		targetCell := cellPayload(target)
		if targetCell == nil {
			c.scene.logger.Warningf("cell portal %q: target cell %q not found", portal.Path(), pp.TargetCell)
			unresolved++
			continue
		}

		pp.target = target.id
		targetCell.incoming = append(targetCell.incoming, portal.id)
		if owner != nil {
			if ownerCell := cellPayload(owner.Node); ownerCell != nil {
				ownerCell.outgoing = append(ownerCell.outgoing, portal.id)
			}
		}
		resolved++
	}

	for _, cell := range cells {
		cp := cellPayload(cell)
		switch {
		case len(cp.outgoing) > 0 && len(cp.incoming) == 0:
			c.scene.logger.Warningf("cell %q has outgoing but no incoming cell portals", cell.Path())
		case len(cp.incoming) > 0 && len(cp.outgoing) == 0:
			c.scene.logger.Warningf("cell %q has incoming but no outgoing cell portals", cell.Path())
		}
	}
	return resolved, unresolved
}

func cellPayload(n *Node) *CellPayload {
	if n == nil || n.kind != KindCell {
		return nil
	}
	cp, _ := n.payload.(*CellPayload)
	return cp
}
