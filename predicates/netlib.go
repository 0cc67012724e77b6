//go:build netlib

package predicates

import (
	"log"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

func init() {
	blas64.Use(netblas.Implementation{})
	log.Println("tetremesh: predicates: using netlib BLAS backend")
}
