// Package twincat reads TwinCAT 3 containers: Visual Studio solutions
// (.sln), system manager projects (.tsproj, with .xti side files), PLC
// projects (.plcproj) and the XML unit files they list (.TcPOU, .TcDUT,
// .TcGVL, .TcIO). Unit files are turned into plain Structured Text by
// joining declaration and implementation sections and closing each
// program unit with its END keyword.
package twincat
