package config

import (
	"errors"
	"net"
	"strconv"
)

// ErrUnknownProfile is returned when a profile other than "1" or "2" is requested.
var ErrUnknownProfile = errors.New("unknown profile")

const (
	ProfileLocal  = "1"
	ProfileRemote = "2"
)

// Endpoint is a host/port pair.
type Endpoint struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the endpoint in host:port form.
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// Configured reports whether the endpoint has a usable port.
func (e Endpoint) Configured() bool {
	return e.Port > 0 && e.Port <= 65535
}

// Profiles holds the local and remote endpoints for one side of the game.
type Profiles struct {
	Local  Endpoint `mapstructure:"local"`
	Remote Endpoint `mapstructure:"remote"`
}

// Select returns the endpoint for the command line profile.
func (p Profiles) Select(profile string) (Endpoint, error) {
	switch profile {
	case ProfileLocal:
		return p.Local, nil
	case ProfileRemote:
		return p.Remote, nil
	default:
		return Endpoint{}, ErrUnknownProfile
	}
}

// Config contains everything the server and client read at startup.
type Config struct {
	Server           Profiles `mapstructure:"server"`
	Client           Profiles `mapstructure:"client"`
	QuestionsFile    string   `mapstructure:"questionsFile"`
	QuestionsPerGame int      `mapstructure:"questionsPerGame"`
	LogLevel         string   `mapstructure:"logLevel"`
}
