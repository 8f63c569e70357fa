package systems

import (
	"reflect"

	"github.com/faewild/faemaze/components"
)

// Component type keys shared across systems
var (
	visitorType = reflect.TypeOf(&components.VisitorComponent{})
	pathType    = reflect.TypeOf(&components.PathComponent{})
	heartType   = reflect.TypeOf(&components.HeartComponent{})
	propType    = reflect.TypeOf(&components.PropComponent{})
)
