package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/localized-problems/internal/adapters/http/dto"
)

// Fault handles the error endpoint. It answers with the generic 500 problem
// for any method, the same body the fault boundary writes.
func Fault(c *gin.Context) {
	dto.WriteProblem(c, dto.FaultProblem())
}
