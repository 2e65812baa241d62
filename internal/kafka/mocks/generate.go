//go:generate mockgen -source=../consumer.go  -destination=./mock_reader.go      -package=mocks
//go:generate mockgen -source=../connector.go -destination=./mock_broker_conn.go -package=mocks

package mocks
