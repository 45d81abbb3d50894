package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// csvList is a flag.Value collecting a comma separated list.
type csvList []string

func (l *csvList) String() string {
	return strings.Join(*l, ",")
}

func (l *csvList) Set(s string) error {
	*l = nil
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// ParseFlags parses configuration flags from args.
//
// Flags:
//
//	-a                server address in format [host]:[port]
//	-d                database DSN
//	-f                backup directory (server)
//	-c/-config        json file path with configs
//	-url              backup API base url (client)
//	-token            backup API bearer token (client)
//	-tokens           accepted owner:token pairs, comma separated (server)
//	-request-timeout  request timeout (e.g., "30s", "1m")
//	-sync-interval    background sync period
//	-debounce         sync debounce window
//	-network          connection type (unknown, unmetered, metered, cellular, none)
//	-low-bandwidth    exclude large blobs from uploads
//	-save-data        defer opportunistic syncs
//	-no-auto-sync     disable opportunistic syncs
//	-conflict-collections  collections inspected for conflicts, comma separated
//	-log-file         client log file
//
// Positional arguments after the flags are kept in Args.
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("shelf-sync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var databaseDSN, backupDir, jsonConfigPath string
	var baseURL, token, networkType, logFile string
	var tokens, conflictCollections csvList
	var requestTimeout, syncInterval, debounce time.Duration
	var lowBandwidth, saveData, noAutoSync bool

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&backupDir, "f", "", "Backup directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&baseURL, "url", "", "Backup API base url")
	fs.StringVar(&token, "token", "", "Backup API token")
	fs.Var(&tokens, "tokens", "Accepted owner:token pairs")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval")
	fs.DurationVar(&debounce, "debounce", 0, "Sync debounce window")
	fs.StringVar(&networkType, "network", "", "Connection type")
	fs.BoolVar(&lowBandwidth, "low-bandwidth", false, "Exclude large blobs from uploads")
	fs.BoolVar(&saveData, "save-data", false, "Defer opportunistic syncs")
	fs.BoolVar(&noAutoSync, "no-auto-sync", false, "Disable opportunistic syncs")
	fs.Var(&conflictCollections, "conflict-collections", "Collections inspected for conflicts")
	fs.StringVar(&logFile, "log-file", "", "Client log file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Files: Files{BackupDir: backupDir},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			Tokens:         tokens,
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			Token:          token,
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			DisableAutoSync:     noAutoSync,
			LowBandwidth:        lowBandwidth,
			SaveData:            saveData,
			NetworkType:         networkType,
			ConflictCollections: conflictCollections,
			Debounce:            debounce,
		},
		Workers:      Workers{SyncInterval: syncInterval},
		Log:          Log{FilePath: logFile},
		JSONFilePath: jsonConfigPath,
		Args:         fs.Args(),
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
