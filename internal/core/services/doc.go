// Package services implements the core application logic behind the
// driving ports: session lifecycle, the territorial hierarchy index, the
// scope broker and selector, the upload coordinator, and the chat session.
//
// Services depend on driven ports for all I/O and never import adapters.
package services
