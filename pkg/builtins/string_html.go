package builtins

import "strcore/pkg/runtime"

// installStringHTMLWrappers wires the Annex B HTML-wrapper methods,
// all built on CreateHTML (string_helpers.go).
func installStringHTMLWrappers(vmi *runtime.VM, proto *runtime.PlainObject, def func(string, int, runtime.NativeFn)) {
	def("anchor", 1, htmlWrapper("a", "name", true))
	def("big", 0, htmlWrapper("big", "", false))
	def("blink", 0, htmlWrapper("blink", "", false))
	def("bold", 0, htmlWrapper("b", "", false))
	def("fixed", 0, htmlWrapper("tt", "", false))
	def("fontcolor", 1, htmlWrapper("font", "color", true))
	def("fontsize", 1, htmlWrapper("font", "size", true))
	def("italics", 0, htmlWrapper("i", "", false))
	def("link", 1, htmlWrapper("a", "href", true))
	def("small", 0, htmlWrapper("small", "", false))
	def("strike", 0, htmlWrapper("strike", "", false))
	def("sub", 0, htmlWrapper("sub", "", false))
	def("sup", 0, htmlWrapper("sup", "", false))
}

// htmlWrapper builds the native function backing one Annex B method:
// tag is the wrapping element, attribute is its attribute name (empty
// for the no-argument wrappers), and hasArg says whether the method
// reads its value from args[0].
func htmlWrapper(tag, attribute string, hasArg bool) runtime.NativeFn {
	return func(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		var value runtime.Value
		if hasArg {
			value = arg(args, 0)
		}
		return CreateHTML(vmi, this, tag, attribute, value)
	}
}
