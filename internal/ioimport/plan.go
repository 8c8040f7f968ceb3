package ioimport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnuuid"
	"github.com/gnames/ifcdb/pkg/config"
	"github.com/gnames/ifcdb/pkg/model"
	"github.com/gnames/ifcdb/pkg/schema"
	"github.com/gnames/ifcdb/pkg/store"
	"github.com/google/uuid"
)

// plan keeps the state of one import.
type plan struct {
	prj       *model.Project
	tx        store.Tx
	skip      bool
	batchSize int
	progress  bool

	id  uuid.UUID
	now time.Time
	rsv *resolver
	res model.ImportResult

	// warnings found while writing
	warnings []string

	// seen keys of properties and quantities, first one wins
	propKeys map[string]struct{}
	qtyKeys  map[string]struct{}
}

func newPlan(
	cfg *config.Config,
	prj *model.Project,
	tx store.Tx,
	skip bool,
) *plan {
	batchSize := cfg.Import.BatchSize
	if batchSize <= 0 {
		batchSize = config.New().Import.BatchSize
	}
	return &plan{
		prj:       prj,
		tx:        tx,
		skip:      skip,
		batchSize: batchSize,
		progress:  cfg.Import.Progress,
		id:        uuid.New(),
		now:       time.Now(),
		rsv:       newResolver(),
		propKeys:  make(map[string]struct{}),
		qtyKeys:   make(map[string]struct{}),
	}
}

func (p *plan) warn(msg string) {
	slog.Warn(msg, "path", p.prj.FilePath)
	p.warnings = append(p.warnings, msg)
}

// result returns counts and all warnings of the import.
func (p *plan) result() *model.ImportResult {
	res := p.res
	res.ProjectID = p.id
	res.ProjectName = p.prj.Name
	res.FilePath = p.prj.FilePath
	res.Warnings = make([]string, 0,
		len(p.prj.Warnings)+len(p.warnings))
	res.Warnings = append(res.Warnings, p.prj.Warnings...)
	res.Warnings = append(res.Warnings, p.warnings...)
	res.Warnings = append(res.Warnings, p.rsv.warnings()...)
	return &res
}

// derivedID creates a stable key of a named row of the project.
func (p *plan) derivedID(kind, name string) uuid.UUID {
	return gnuuid.New(p.id.String() + "|" + kind + "|" + name)
}

func (p *plan) checkDuplicate(ctx context.Context) error {
	id, ok, err := p.tx.FindByHash(ctx, p.prj.FileHash)
	if err != nil || !ok {
		return err
	}
	if p.skip {
		return DuplicateFileError(p.prj.FilePath, id)
	}

	if err = p.tx.SoftDelete(ctx, id); err != nil {
		return err
	}
	p.res.ReplacedProject = &id
	slog.Info("Replacing earlier import",
		"path", p.prj.FilePath, "project_id", id)
	return nil
}

func (p *plan) project(ctx context.Context) error {
	row := schema.Project{
		ID:               p.id,
		Name:             p.prj.Name,
		Description:      p.prj.Description,
		SchemaVersion:    p.prj.SchemaVersion,
		OriginalFilePath: p.prj.FilePath,
		OriginalFileHash: p.prj.FileHash,
		AuthoringApp:     p.prj.AuthoringApp,
		Author:           p.prj.Author,
		Organization:     p.prj.Organization,
		CreatedAt:        p.now,
		UpdatedAt:        p.now,
		ImportedAt:       p.now,
	}
	return p.tx.InsertProject(ctx, row)
}

func (p *plan) storeys(ctx context.Context) error {
	rows := make([]schema.Storey, 0, len(p.prj.Storeys))
	for _, st := range p.prj.Storeys {
		if p.rsv.has(kindStorey, st.GlobalID) {
			p.warn(fmt.Sprintf("duplicate storey GlobalId %q skipped", st.GlobalID))
			continue
		}
		row := schema.Storey{
			ID:        uuid.New(),
			ProjectID: p.id,
			GlobalID:  st.GlobalID,
			Name:      st.Name,
			LongName:  st.LongName,
			Elevation: st.Elevation,
		}
		p.rsv.register(kindStorey, st.GlobalID, row.ID)
		rows = append(rows, row)
	}

	if err := p.tx.InsertStoreys(ctx, rows); err != nil {
		return err
	}
	p.res.StoreyCount = len(rows)
	return nil
}

func (p *plan) types(ctx context.Context) error {
	rows := make([]schema.ElementType, 0, len(p.prj.Types))
	for _, t := range p.prj.Types {
		if p.rsv.has(kindType, t.GlobalID) {
			p.warn(fmt.Sprintf("duplicate type GlobalId %q skipped", t.GlobalID))
			continue
		}
		row := schema.ElementType{
			ID:          uuid.New(),
			ProjectID:   p.id,
			GlobalID:    t.GlobalID,
			IfcClass:    t.IfcClass,
			Name:        t.Name,
			Description: t.Description,
		}
		p.rsv.register(kindType, t.GlobalID, row.ID)
		rows = append(rows, row)
	}

	if err := p.tx.InsertTypes(ctx, rows); err != nil {
		return err
	}
	p.res.TypeCount = len(rows)
	return nil
}

func (p *plan) materials(ctx context.Context) error {
	rows := make([]schema.Material, 0, len(p.prj.Materials))
	for _, m := range p.prj.Materials {
		if p.rsv.has(kindMaterial, m.Name) {
			continue
		}
		row := schema.Material{
			ID:        p.derivedID("material", m.Name),
			ProjectID: p.id,
			Name:      m.Name,
			Category:  m.Category,
		}
		p.rsv.register(kindMaterial, m.Name, row.ID)
		rows = append(rows, row)
	}

	if err := p.tx.InsertMaterials(ctx, rows); err != nil {
		return err
	}
	p.res.MaterialCount = len(rows)
	return nil
}

// propertySets creates one definition per distinct set name, then writes
// properties of types.
func (p *plan) propertySets(ctx context.Context) error {
	var rows []schema.PropertySetDefinition
	add := func(props []model.Property) {
		for _, pr := range props {
			name := pr.Set()
			if p.rsv.has(kindPset, name) {
				continue
			}
			row := schema.PropertySetDefinition{
				ID:        p.derivedID("pset", name),
				ProjectID: p.id,
				Name:      name,
			}
			p.rsv.register(kindPset, name, row.ID)
			rows = append(rows, row)
		}
	}
	for _, t := range p.prj.Types {
		add(t.Properties)
	}
	for _, e := range p.prj.Elements {
		add(e.Properties)
	}
	for _, s := range p.prj.Spaces {
		add(s.Properties)
	}

	if err := p.tx.InsertPsetDefinitions(ctx, rows); err != nil {
		return err
	}

	var props []schema.TypeProperty
	for _, t := range p.prj.Types {
		typeID, ok := p.rsv.lookup(kindType, t.GlobalID)
		if !ok {
			continue
		}
		for _, pr := range t.Properties {
			psetID, ok := p.propertyKey(typeID, pr)
			if !ok {
				continue
			}
			props = append(props, schema.TypeProperty{
				ID:               uuid.New(),
				TypeID:           typeID,
				PsetDefinitionID: psetID,
				PropertyName:     pr.Name,
				PropertyValue:    pr.Text(),
				DataType:         string(pr.DataType),
				Unit:             pr.Unit,
			})
		}
	}

	if err := p.tx.InsertTypeProperties(ctx, props); err != nil {
		return err
	}
	p.res.PropertyCount += len(props)
	return nil
}

// propertyKey resolves the set of a property and drops repeated
// properties of the same owner.
func (p *plan) propertyKey(owner uuid.UUID, pr model.Property) (uuid.UUID, bool) {
	psetID, ok := p.rsv.lookup(kindPset, pr.Set())
	if !ok {
		return uuid.Nil, false
	}
	key := owner.String() + "|" + psetID.String() + "|" + pr.Name
	if _, ok := p.propKeys[key]; ok {
		return uuid.Nil, false
	}
	p.propKeys[key] = struct{}{}
	return psetID, true
}

// batch is the set of rows written in one round.
type batch struct {
	elements  []schema.BuildingElement
	props     []schema.ElementProperty
	qtys      []schema.ElementQuantity
	materials []schema.ElementMaterial

	// keys are registered after the batch is written
	keys map[string]uuid.UUID
}

func (p *plan) elements(ctx context.Context) error {
	els := p.prj.Elements
	var bar *pb.ProgressBar
	if p.progress && len(els) > 0 {
		bar = pb.Full.Start(len(els))
		bar.Set("prefix", "Importing elements: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	for i := 0; i < len(els); i += p.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(i+p.batchSize, len(els))
		b := p.elementBatch(els[i:end])
		if err := p.writeBatch(ctx, b); err != nil {
			return err
		}
		for gid, id := range b.keys {
			p.rsv.register(kindElement, gid, id)
		}

		p.res.ElementCount += len(b.elements)
		p.res.PropertyCount += len(b.props)
		p.res.QuantityCount += len(b.qtys)
		p.res.LayerCount += len(b.materials)
		if bar != nil {
			bar.Add(end - i)
		}
		slog.Debug("Element batch written",
			"path", p.prj.FilePath, "from", i, "to", end)
	}
	return nil
}

func (p *plan) elementBatch(els []model.Element) *batch {
	b := &batch{keys: make(map[string]uuid.UUID, len(els))}
	for _, el := range els {
		if _, ok := b.keys[el.GlobalID]; ok || p.rsv.has(kindElement, el.GlobalID) {
			p.warn(fmt.Sprintf("duplicate element GlobalId %q skipped", el.GlobalID))
			continue
		}
		row := schema.BuildingElement{
			ID:            uuid.New(),
			ProjectID:     p.id,
			StoreyID:      p.rsv.ref(kindStorey, el.StoreyGlobalID),
			TypeID:        p.rsv.ref(kindType, el.TypeGlobalID),
			GlobalID:      el.GlobalID,
			IfcClass:      el.IfcClass,
			Category:      string(el.Category()),
			Name:          el.Name,
			Description:   el.Description,
			ObjectType:    el.ObjectType,
			Tag:           el.Tag,
			LengthM:       el.Length,
			WidthM:        el.Width,
			HeightM:       el.Height,
			AreaM2:        el.Area,
			VolumeM3:      el.Volume,
			PositionX:     el.PositionX,
			PositionY:     el.PositionY,
			PositionZ:     el.PositionZ,
			IsExternal:    el.IsExternal,
			IsLoadBearing: el.IsLoadBearing,
		}
		b.keys[el.GlobalID] = row.ID
		b.elements = append(b.elements, row)

		b.props = append(b.props, p.elementProperties(row.ID, el.Properties)...)
		b.qtys = append(b.qtys, p.quantities(row.ID, el.Quantities)...)

		for _, l := range el.Materials {
			matID, ok := p.rsv.lookup(kindMaterial, l.Name)
			if !ok {
				continue
			}
			b.materials = append(b.materials, schema.ElementMaterial{
				ID:             uuid.New(),
				ElementID:      row.ID,
				MaterialID:     matID,
				LayerOrder:     l.Order,
				LayerThickness: l.Thickness,
				IsVentilated:   l.IsVentilated,
			})
		}
	}
	return b
}

func (p *plan) writeBatch(ctx context.Context, b *batch) error {
	if err := p.tx.InsertElements(ctx, b.elements); err != nil {
		return err
	}
	if err := p.tx.InsertElementProperties(ctx, b.props); err != nil {
		return err
	}
	if err := p.tx.InsertQuantities(ctx, b.qtys); err != nil {
		return err
	}
	return p.tx.InsertElementMaterials(ctx, b.materials)
}

func (p *plan) elementProperties(
	owner uuid.UUID,
	props []model.Property,
) []schema.ElementProperty {
	var res []schema.ElementProperty
	for _, pr := range props {
		psetID, ok := p.propertyKey(owner, pr)
		if !ok {
			continue
		}
		res = append(res, schema.ElementProperty{
			ID:               uuid.New(),
			ElementID:        owner,
			PsetDefinitionID: psetID,
			PropertyName:     pr.Name,
			PropertyValue:    pr.Text(),
			DataType:         string(pr.DataType),
			Unit:             pr.Unit,
		})
	}
	return res
}

func (p *plan) quantities(
	owner uuid.UUID,
	qtys []model.Quantity,
) []schema.ElementQuantity {
	var res []schema.ElementQuantity
	for _, q := range qtys {
		key := owner.String() + "|" + q.QtoName + "|" + q.Name
		if _, ok := p.qtyKeys[key]; ok {
			continue
		}
		p.qtyKeys[key] = struct{}{}
		res = append(res, schema.ElementQuantity{
			ID:            uuid.New(),
			ElementID:     owner,
			QtoName:       q.QtoName,
			QuantityName:  q.Name,
			QuantityValue: q.Value,
			Unit:          q.Unit,
			Formula:       q.Formula,
		})
	}
	return res
}

// openings links doors and windows to the elements they are placed in.
func (p *plan) openings(ctx context.Context) error {
	var rows []schema.ElementOpening
	for _, el := range p.prj.Elements {
		if el.HostGlobalID == "" {
			continue
		}
		filling, ok := p.rsv.keys[kindElement][el.GlobalID]
		if !ok {
			continue
		}
		host, ok := p.rsv.lookup(kindOpening, el.HostGlobalID)
		if !ok || host == filling {
			continue
		}
		rows = append(rows, schema.ElementOpening{
			ID:               uuid.New(),
			HostElementID:    host,
			FillingElementID: filling,
		})
	}

	if err := p.tx.InsertOpenings(ctx, rows); err != nil {
		return err
	}
	p.res.OpeningCount = len(rows)
	return nil
}

// spaces writes every space with its backing element in one batch.
// Boundaries are resolved after all backing elements are known.
func (p *plan) spaces(ctx context.Context) error {
	b := &batch{keys: make(map[string]uuid.UUID, len(p.prj.Spaces))}
	rows := make([]schema.Space, 0, len(p.prj.Spaces))
	written := make([]model.Space, 0, len(p.prj.Spaces))

	for _, s := range p.prj.Spaces {
		if _, ok := b.keys[s.GlobalID]; ok || p.rsv.has(kindElement, s.GlobalID) {
			p.warn(fmt.Sprintf("duplicate space GlobalId %q skipped", s.GlobalID))
			continue
		}
		if s.ExZone == "" {
			s.ExZone = model.ZoneNone
		}
		storeyID := p.rsv.ref(kindStorey, s.StoreyGlobalID)
		el := schema.BuildingElement{
			ID:        uuid.New(),
			ProjectID: p.id,
			StoreyID:  storeyID,
			GlobalID:  s.GlobalID,
			IfcClass:  "IfcSpace",
			Category:  string(model.CategorySpace),
			Name:      s.Name,
			AreaM2:    s.Area(),
			VolumeM3:  s.Volume(),
		}
		b.keys[s.GlobalID] = el.ID
		b.elements = append(b.elements, el)

		rows = append(rows, schema.Space{
			ID:              uuid.New(),
			ProjectID:       p.id,
			StoreyID:        storeyID,
			ElementID:       el.ID,
			GlobalID:        s.GlobalID,
			Name:            s.Name,
			LongName:        s.LongName,
			SpaceNumber:     s.SpaceNumber,
			NetFloorArea:    s.NetFloorArea,
			GrossFloorArea:  s.GrossFloorArea,
			NetVolume:       s.NetVolume,
			GrossVolume:     s.GrossVolume,
			NetHeight:       s.NetHeight,
			OccupancyType:   s.OccupancyType,
			ExZone:          string(s.ExZone),
			HazardousArea:   s.ExZone.IsHazardous(),
			FireCompartment: s.FireCompartment,
			FinishFloor:     s.FinishFloor,
			FinishWall:      s.FinishWall,
			FinishCeiling:   s.FinishCeiling,
		})
		written = append(written, s)

		b.props = append(b.props, p.elementProperties(el.ID, s.Properties)...)
		b.qtys = append(b.qtys, p.quantities(el.ID, s.Quantities)...)
	}
	for gid, id := range b.keys {
		p.rsv.register(kindElement, gid, id)
	}

	var bounds []schema.SpaceBoundary
	for i, s := range written {
		for _, bd := range s.Boundaries {
			elID, ok := p.rsv.lookup(kindBoundary, bd.ElementGlobalID)
			if !ok {
				continue
			}
			bounds = append(bounds, schema.SpaceBoundary{
				ID:                 uuid.New(),
				SpaceID:            rows[i].ID,
				ElementID:          elID,
				PhysicalOrVirtual:  bd.PhysicalOrVirtual,
				InternalOrExternal: bd.InternalOrExternal,
			})
		}
	}

	if err := p.tx.InsertElements(ctx, b.elements); err != nil {
		return err
	}
	if err := p.tx.InsertSpaces(ctx, rows); err != nil {
		return err
	}
	if err := p.tx.InsertElementProperties(ctx, b.props); err != nil {
		return err
	}
	if err := p.tx.InsertQuantities(ctx, b.qtys); err != nil {
		return err
	}
	if err := p.tx.InsertBoundaries(ctx, bounds); err != nil {
		return err
	}

	p.res.SpaceCount = len(rows)
	p.res.PropertyCount += len(b.props)
	p.res.QuantityCount += len(b.qtys)
	p.res.BoundaryCount = len(bounds)
	return nil
}
