package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/thenoetrevino/coffeehub/internal/models"
)

// Credentials is the per-backend connection information file.
type Credentials struct {
	MySQL *MySQLCredentials `json:"mysql"`
	Neo4j *Neo4jCredentials `json:"neo4j"`
	Redis *RedisCredentials `json:"redis"`
	Mongo *MongoCredentials `json:"mongo"`
}

type MySQLCredentials struct {
	Account  string `json:"acc"`
	Password string `json:"pass"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
}

// Addr returns host:port, defaulting the port to 3306.
func (c *MySQLCredentials) Addr() string {
	port := c.Port
	if port == 0 {
		port = 3306
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

type Neo4jCredentials struct {
	URI      string `json:"uri"`
	Account  string `json:"acc"`
	Password string `json:"pass"`
}

type RedisCredentials struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"pass"`
	DB       int    `json:"db"`
}

// Addr returns host:port, defaulting the port to 6379.
func (c *RedisCredentials) Addr() string {
	port := c.Port
	if port == 0 {
		port = 6379
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

type MongoCredentials struct {
	URI string `json:"uri"`
}

// LoadCredentials reads and validates the credentials file at path.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials %s: %w", path, err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials %s: %w", path, err)
	}

	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Validate checks that every backend has an entry with its required fields.
func (c *Credentials) Validate() error {
	switch {
	case c.MySQL == nil:
		return &models.ValidationError{Field: "mysql", Reason: "missing credentials entry"}
	case c.MySQL.Host == "":
		return &models.ValidationError{Field: "mysql.host", Reason: "required"}
	case c.Neo4j == nil:
		return &models.ValidationError{Field: "neo4j", Reason: "missing credentials entry"}
	case c.Neo4j.URI == "":
		return &models.ValidationError{Field: "neo4j.uri", Reason: "required"}
	case c.Redis == nil:
		return &models.ValidationError{Field: "redis", Reason: "missing credentials entry"}
	case c.Redis.Host == "":
		return &models.ValidationError{Field: "redis.host", Reason: "required"}
	case c.Mongo == nil:
		return &models.ValidationError{Field: "mongo", Reason: "missing credentials entry"}
	case c.Mongo.URI == "":
		return &models.ValidationError{Field: "mongo.uri", Reason: "required"}
	}
	return nil
}
