package entity

// BundleComponent declara que una unidad del producto bundle consume
// RequiredQuantity unidades del producto componente. Presente en el modelo
// por integridad referencial; ninguna operación del sistema lo recorre hoy.
type BundleComponent struct {
	BundleProductID    string
	ComponentProductID string
	RequiredQuantity   int64 // >= 1
}
