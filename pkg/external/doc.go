// Package external documents the interfaces the core engine consumes
// from its surrounding collaborators, without implementing any of them:
// command-line front-ends, problem-file parsing, and result dumping or
// plotting all live outside the engine. ProblemSource, ResultSink, and
// WorkerBundle exist here only as the contract the core depends on:
// pkg/problem, pkg/driver, and pkg/neighborhood accept already-built
// values and never import this package.
package external
