package chly

import (
	"fmt"
	"reflect"
)

// Constructor represents a construction target for Register and
// RegisterSingleton. Two forms are accepted:
//
//   - a constructor function whose parameters are resolved from the
//     container, returning (T) or (T, error):
//     func() *T
//     func(Dep1) *T
//     func(Dep1, Dep2, ...) (*T, error)
//   - a pointer-to-struct exemplar such as &ConsoleLogger{}, for concrete
//     types that need no dependencies; a fresh zero value is built per
//     instantiation.
type Constructor any

// constructorInfo holds the signature metadata parsed from a constructor
// function. It is derived from the function type alone, so it is shared
// between all constructors with the same signature.
type constructorInfo struct {
	paramTypes   []reflect.Type
	resultType   reflect.Type
	returnsError bool
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// parseConstructor analyzes a constructor function type and extracts its
// metadata.
func parseConstructor(fnType reflect.Type) (*constructorInfo, error) {
	if fnType.IsVariadic() {
		return nil, &ConstructionError{Type: fnType, Reason: "variadic constructors are not supported"}
	}

	numOut := fnType.NumOut()
	if numOut == 0 || numOut > 2 {
		return nil, &ConstructionError{
			Type:   fnType,
			Reason: fmt.Sprintf("constructor must return (T) or (T, error), got %d return values", numOut),
		}
	}

	returnsError := false
	if numOut == 2 {
		if !fnType.Out(1).Implements(errorType) {
			return nil, &ConstructionError{
				Type:   fnType,
				Reason: fmt.Sprintf("constructor's second return value must be error, got %v", fnType.Out(1)),
			}
		}
		returnsError = true
	}

	numParams := fnType.NumIn()
	paramTypes := make([]reflect.Type, numParams)
	for i := 0; i < numParams; i++ {
		paramTypes[i] = fnType.In(i)
	}

	return &constructorInfo{
		paramTypes:   paramTypes,
		resultType:   fnType.Out(0),
		returnsError: returnsError,
	}, nil
}

// buildFactory derives a reusable factory from a construction target. The
// target is inspected exactly once, here; the returned factory re-resolves
// its dependencies against the registry on every invocation but never
// re-inspects the target. The second return value is the type the factory
// produces.
func (c *Container) buildFactory(target Constructor) (resolverFunc, reflect.Type, error) {
	if target == nil {
		return nil, nil, &ConstructionError{Reason: "construction target cannot be nil"}
	}

	targetType := reflect.TypeOf(target)

	switch {
	case targetType.Kind() == reflect.Func:
		info, err := constructors.get(targetType)
		if err != nil {
			return nil, nil, err
		}
		return newConstructingFactory(reflect.ValueOf(target), info), info.resultType, nil

	case targetType.Kind() == reflect.Pointer && targetType.Elem().Kind() == reflect.Struct:
		elem := targetType.Elem()
		factory := func(_ *Container, _ []reflect.Type) (any, error) {
			return reflect.New(elem).Interface(), nil
		}
		return factory, targetType, nil

	default:
		return nil, nil, &ConstructionError{
			Type:   targetType,
			Reason: "construction target must be a constructor function or a pointer to struct",
		}
	}
}

// newConstructingFactory produces the factory for a constructor function:
// each invocation resolves every parameter type, in declared order, then
// calls the constructor with the results.
func newConstructingFactory(fn reflect.Value, info *constructorInfo) resolverFunc {
	return func(c *Container, stack []reflect.Type) (any, error) {
		args := make([]reflect.Value, len(info.paramTypes))
		for i, paramType := range info.paramTypes {
			dep, err := c.resolve(paramType, stack)
			if err != nil {
				return nil, err
			}
			if dep == nil {
				args[i] = reflect.Zero(paramType)
			} else {
				args[i] = reflect.ValueOf(dep)
			}
		}

		results := fn.Call(args)

		if info.returnsError {
			if errValue := results[1]; !errValue.IsNil() {
				return nil, errValue.Interface().(error)
			}
		}

		return results[0].Interface(), nil
	}
}

// constantFactory wraps a pre-built instance. Used for RegisterInstance and
// for singletons once their instance exists.
func constantFactory(instance any) resolverFunc {
	return func(_ *Container, _ []reflect.Type) (any, error) {
		return instance, nil
	}
}
