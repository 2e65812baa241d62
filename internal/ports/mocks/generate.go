//go:generate mockgen -source=../broker.go               -destination=./mock_broker.go               -package=mocks
//go:generate mockgen -source=../credentials.go          -destination=./mock_credentials.go          -package=mocks
//go:generate mockgen -source=../collector.go            -destination=./mock_collector.go            -package=mocks
//go:generate mockgen -source=../execution_repository.go -destination=./mock_execution_repository.go -package=mocks
//go:generate mockgen -source=../execution_cache.go      -destination=./mock_execution_cache.go      -package=mocks
//go:generate mockgen -source=../execution_service.go    -destination=./mock_execution_service.go    -package=mocks
//go:generate mockgen -source=../validator.go            -destination=./mock_validator.go            -package=mocks

package mocks
