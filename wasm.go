//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/cottand/tyl/tyl"
)

func main() {
	js.Global().Set("CheckAndShowTypes", js.FuncOf(checkAndShowTypes))
	js.Global().Set("InterpretTyl", js.FuncOf(interpretTyl))

	// wait indefinitely so that Go does not terminate execution
	// and the functions remain available
	<-make(chan struct{})
}

func checkAndShowTypes(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "interpreter panicked: " + fmt.Sprint(r)
		}
	}()
	return tyl.ShowTypes(args[0].String())
}

// interpretTyl takes the program and whether to skip typechecking
func interpretTyl(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "interpreter panicked: " + fmt.Sprint(r)
		}
	}()
	noCheck := len(args) > 1 && args[1].Bool()
	return tyl.ShowOutput(args[0].String(), tyl.LoadSettings{NoCheck: noCheck})
}
