package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate. Parents come
// before children.
func AllModels() []any {
	return []any{
		&Project{},
		&Storey{},
		&ElementType{},
		&BuildingElement{},
		&Space{},
		&PropertySetDefinition{},
		&ElementProperty{},
		&TypeProperty{},
		&ElementQuantity{},
		&Material{},
		&ElementMaterial{},
		&SpaceBoundary{},
		&ElementOpening{},
	}
}

// TableNames returns table names of all models, children first. It is the
// order in which tables can be dropped.
func TableNames() []string {
	models := AllModels()
	res := make([]string, 0, len(models))
	for i := len(models) - 1; i >= 0; i-- {
		if t, ok := models[i].(interface{ TableName() string }); ok {
			res = append(res, t.TableName())
		}
	}
	return res
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
