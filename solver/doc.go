// Package solver exposes many independent TPE optimizer instances to an
// external benchmark driver over a line-delimited JSON request/response
// protocol.
//
// The driver creates one solver session per optimization run, describing the
// search space as a list of variable domains (uniform, log-uniform, discrete
// or categorical). Each session composes one tpe.TpeOptimizer per variable;
// the package warps values between a variable's native domain and the
// optimizer's internal linear domain before and after every ask/tell.
//
// Message flow:
//
//	driver                      solver
//	  | -- hello -------------->  |
//	  | <------- capabilities --  |
//	  | -- create ------------->  |
//	  | -- ask ---------------->  |
//	  | <----------- ask_reply -- |
//	  | -- tell --------------->  |
//	  | <---------- tell_reply -- |
//	  | -- drop --------------->  |
//
// Malformed or unroutable messages produce an error reply carrying the
// failing detail; the process never aborts on driver input.
package solver
