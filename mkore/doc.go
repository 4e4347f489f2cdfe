// Package mkore implements the build graph that hosts the native-image task.
// A [Project] consists of goals ([Goal]) that are reached by running actions
// ([Action]). The work of an action is done by its [Operation]. A [Builder]
// brings goals up to date in dependency order and reports what it does
// through a [Trace].
//
// mkore uses idiomatic Go error handling. For writing build definitions the
// root package [graalmk] provides an easier wrapper.
//
// [graalmk]: https://pkg.go.dev/git.fractalqb.de/fractalqb/graalmk
package mkore
