package common

// AppName is used as the default storage namespace and in user-facing banners.
const AppName = "Blood Connect"

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "BLOODCONNECT_"
