package apiclient

import (
	"fmt"
	"reflect"
)

// check прогоняет Check() для значения или для каждого элемента среза.
func check(out any) error {
	if c, ok := out.(Checker); ok {
		return c.Check()
	}
	v := reflect.ValueOf(out)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return nil
	}
	for i := 0; i < v.Len(); i++ {
		c, ok := v.Index(i).Addr().Interface().(Checker)
		if !ok {
			return nil
		}
		if err := c.Check(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}
