package sockets

import "crypto/tls"

// tlsCipherSuites is the process-wide cipher list: the original's
// OpenSSL cipher string "HIGH:!aNULL:!MD5:!SEED:!RC2:!RC4:!SHA1:!DES:!3DES"
// narrowed further, per SPEC_FULL.md §4, to 128-bit AEAD suites only
// (crypto/tls has no cipher-string parser, so the equivalent suite set
// is enumerated directly).
var tlsCipherSuites = []uint16{
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
}

// newTLSConfig builds the process-wide TLS context (sockets_New / the
// module-level SSL_CTX in the original): minimum protocol version 1.2,
// the narrowed cipher list above, and session compression left at its
// Go default (crypto/tls never implements TLS compression, matching
// SSL_OP_NO_COMPRESSION being forced on in the original). Go's
// crypto/tls always enables partial-write-tolerant, moving-buffer-safe
// semantics and never auto-retries a short write silently, so the
// SSL_MODE_* flags in sockets.c have no Go-side knob to set.
func newTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		CipherSuites: tlsCipherSuites,
	}
}

// processTLSConfig is the single shared client/server TLS context, built
// once at package init like the original's one-time sockets_New TLS setup.
var processTLSConfig = newTLSConfig()

// ClientTLSConfig returns a copy of the process-wide TLS config with
// ServerName set for certificate verification against host.
func ClientTLSConfig(host string) *tls.Config {
	cfg := processTLSConfig.Clone()
	cfg.ServerName = host
	return cfg
}

// ServerTLSConfig returns a copy of the process-wide TLS config fitted
// with the given certificate for accepting TLS connections.
func ServerTLSConfig(cert tls.Certificate) *tls.Config {
	cfg := processTLSConfig.Clone()
	cfg.Certificates = []tls.Certificate{cert}
	return cfg
}
