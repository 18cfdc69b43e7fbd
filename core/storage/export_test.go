package storage

var NewTransportForTest = newTransport
